package observed

import (
	"errors"
)

// observingIterator routes removal through the handler of the collection it was created by.
// last holds the element returned by the most recent successful Next.
type observingIterator[E any] struct {
	collection *Collection[E]
	iterator   Iterator[E]
	last       E
}

func newObservingIterator[E any](collection *Collection[E], iterator Iterator[E]) *observingIterator[E] {
	return &observingIterator[E]{
		collection: collection,
		iterator:   iterator,
	}
}

func (it *observingIterator[E]) HasNext() bool {
	return it.iterator.HasNext()
}

func (it *observingIterator[E]) Next() (E, error) {
	element, err := it.iterator.Next()
	if err != nil {
		return element, err
	}

	it.last = element

	return element, nil
}

// Remove asks PreRemove for the last element first. A veto leaves the element in place
// and returns nil. Errors of the wrapped iterator, e.g. ErrIllegalState, are returned
// unmodified and suppress PostRemove.
func (it *observingIterator[E]) Remove() error {
	c := it.collection

	allowed, preErr := c.handler.PreRemove(it.last)
	if preErr != nil {
		c.logError(logMsgPreHookFailed, EventTypeRemove, preErr)
		return errors.Join(ErrPreHookFailed, preErr)
	}

	if !allowed {
		c.logVeto(EventTypeRemove)
		return nil
	}

	if err := it.iterator.Remove(); err != nil {
		c.logError(logMsgContainerFailed, EventTypeRemove, err)
		return err
	}

	if postErr := c.handler.PostRemove(it.last, true); postErr != nil {
		c.logError(logMsgPostHookFailed, EventTypeRemove, postErr)
		return errors.Join(ErrPostHookFailed, postErr)
	}

	return nil
}
