package observed

import (
	"errors"
	"iter"
)

const (
	logMsgVetoed          = "modification vetoed"
	logMsgPreHookFailed   = "pre modification hook failed"
	logMsgContainerFailed = "container modification failed"
	logMsgPostHookFailed  = "post modification hook failed"
	logAttrOperation      = "operation"
	logAttrError          = "error"
)

// Collection decorates a Container so that every modification passes through a Handler.
//
// Each mutating method asks the handler's Pre hook first. A veto leaves the container
// untouched and reports no change. Otherwise the container is modified and the handler's
// Post hook is told the outcome. Errors of the container are returned unmodified and
// suppress the Post hook. Errors of a Post hook are returned after the modification
// took effect.
//
// Collection implements Container itself, so observed collections can be stacked.
type Collection[E any] struct {
	container Container[E]
	handler   Handler[E]
	registry  *Registry[E]
	logger    Logger
}

// Wrap decorates container with a StandardHandler without listeners.
// Use Handler to register listeners later on.
func Wrap[E any](container Container[E], options ...Option[E]) (*Collection[E], error) {
	return WrapWith(container, nil, options...)
}

// WrapWith decorates container with the handler resolved for listener.
//
// The listener may be a Handler, which is used directly, nil, which yields the same
// handler as Wrap, or anything a registered Strategy accepts.
// It fails with ErrNilContainer for a nil container, with ErrUnsupportedListener if no
// strategy accepts the listener and with ErrHandlerAlreadyBound if the handler already
// guards another collection.
func WrapWith[E any](container Container[E], listener any, options ...Option[E]) (*Collection[E], error) {
	if container == nil {
		return nil, ErrNilContainer
	}

	c := &Collection[E]{container: container}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	if c.registry == nil {
		c.registry = DefaultRegistry[E]()
	}

	handler, err := c.registry.Resolve(c, listener)
	if err != nil {
		return nil, err
	}

	if err := handler.Bind(c); err != nil {
		return nil, err
	}

	c.handler = handler

	return c, nil
}

// Handler returns the handler guarding this collection, never nil.
func (c *Collection[E]) Handler() Handler[E] {
	return c.handler
}

// Add adds element unless the handler vetoes it.
func (c *Collection[E]) Add(element E) (bool, error) {
	return modify(c, EventTypeAdd,
		func() (bool, error) { return c.handler.PreAdd(element) },
		func() (bool, error) { return c.container.Add(element) },
		func(changed bool) error { return c.handler.PostAdd(element, changed) },
	)
}

// AddAll adds all elements unless the handler vetoes it.
// The handler receives the very slice passed by the caller.
func (c *Collection[E]) AddAll(elements []E) (bool, error) {
	return modify(c, EventTypeAddAll,
		func() (bool, error) { return c.handler.PreAddAll(elements) },
		func() (bool, error) { return c.container.AddAll(elements) },
		func(changed bool) error { return c.handler.PostAddAll(elements, changed) },
	)
}

// Remove removes element unless the handler vetoes it.
func (c *Collection[E]) Remove(element E) (bool, error) {
	return modify(c, EventTypeRemove,
		func() (bool, error) { return c.handler.PreRemove(element) },
		func() (bool, error) { return c.container.Remove(element) },
		func(changed bool) error { return c.handler.PostRemove(element, changed) },
	)
}

// RemoveAll removes all elements contained in elements unless the handler vetoes it.
func (c *Collection[E]) RemoveAll(elements []E) (bool, error) {
	return modify(c, EventTypeRemoveAll,
		func() (bool, error) { return c.handler.PreRemoveAll(elements) },
		func() (bool, error) { return c.container.RemoveAll(elements) },
		func(changed bool) error { return c.handler.PostRemoveAll(elements, changed) },
	)
}

// RetainAll removes all elements not contained in elements unless the handler vetoes it.
func (c *Collection[E]) RetainAll(elements []E) (bool, error) {
	return modify(c, EventTypeRetainAll,
		func() (bool, error) { return c.handler.PreRetainAll(elements) },
		func() (bool, error) { return c.container.RetainAll(elements) },
		func(changed bool) error { return c.handler.PostRetainAll(elements, changed) },
	)
}

// Clear removes all elements unless the handler vetoes it.
func (c *Collection[E]) Clear() error {
	_, err := modify(c, EventTypeClear,
		func() (bool, error) { return c.handler.PreClear() },
		func() (bool, error) { return true, c.container.Clear() },
		func(_ bool) error { return c.handler.PostClear() },
	)

	return err
}

// RemoveIf removes every element for which match returns true and returns how many were removed.
// Each removal goes through the iterator and therefore through PreRemove and PostRemove.
func (c *Collection[E]) RemoveIf(match func(E) bool) (int, error) {
	sizeBefore := c.container.Len()

	it := c.Iterator()
	for it.HasNext() {
		element, err := it.Next()
		if err != nil {
			return sizeBefore - c.container.Len(), err
		}

		if !match(element) {
			continue
		}

		if err := it.Remove(); err != nil {
			return sizeBefore - c.container.Len(), err
		}
	}

	return sizeBefore - c.container.Len(), nil
}

// Len returns the number of elements of the wrapped container.
func (c *Collection[E]) Len() int {
	return c.container.Len()
}

// Contains reports whether the wrapped container holds element.
func (c *Collection[E]) Contains(element E) bool {
	return c.container.Contains(element)
}

// ContainsAll reports whether the wrapped container holds all elements.
func (c *Collection[E]) ContainsAll(elements []E) bool {
	return c.container.ContainsAll(elements)
}

// All returns a read-only sequence over the wrapped container.
func (c *Collection[E]) All() iter.Seq[E] {
	return c.container.All()
}

// Iterator returns an iterator whose Remove is guarded by the handler like Remove is.
func (c *Collection[E]) Iterator() Iterator[E] {
	return newObservingIterator(c, c.container.Iterator())
}

// modify runs one modification through the pre, execute, post protocol.
func modify[E any](
	c *Collection[E],
	eventType EventType,
	pre func() (bool, error),
	execute func() (bool, error),
	post func(changed bool) error,
) (bool, error) {

	allowed, preErr := pre()
	if preErr != nil {
		c.logError(logMsgPreHookFailed, eventType, preErr)
		return false, errors.Join(ErrPreHookFailed, preErr)
	}

	if !allowed {
		c.logVeto(eventType)
		return false, nil
	}

	changed, execErr := execute()
	if execErr != nil {
		c.logError(logMsgContainerFailed, eventType, execErr)
		return false, execErr
	}

	if postErr := post(changed); postErr != nil {
		c.logError(logMsgPostHookFailed, eventType, postErr)
		return changed, errors.Join(ErrPostHookFailed, postErr)
	}

	return changed, nil
}

// logVeto logs a vetoed modification at debug level if the logger is configured.
func (c *Collection[E]) logVeto(eventType EventType) {
	if c.logger != nil {
		c.logger.Debug(logMsgVetoed, logAttrOperation, eventType.String())
	}
}

// logError logs error information at the error level if the logger is configured.
func (c *Collection[E]) logError(message string, eventType EventType, err error) {
	if c.logger != nil {
		c.logger.Error(message, logAttrOperation, eventType.String(), logAttrError, err.Error())
	}
}

var _ Container[int] = (*Collection[int])(nil)
