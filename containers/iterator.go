package containers

import (
	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// indexIterator walks an index-addressable container front to back.
// lastIndex is -1 while there is no element that Remove may remove.
type indexIterator[E any] struct {
	at        func(index int) E
	size      func() int
	removeAt  func(index int)
	next      int
	lastIndex int
}

func newIndexIterator[E any](at func(int) E, size func() int, removeAt func(int)) *indexIterator[E] {
	return &indexIterator[E]{
		at:        at,
		size:      size,
		removeAt:  removeAt,
		lastIndex: -1,
	}
}

func (it *indexIterator[E]) HasNext() bool {
	return it.next < it.size()
}

func (it *indexIterator[E]) Next() (E, error) {
	if !it.HasNext() {
		var zero E
		return zero, observed.ErrNoSuchElement
	}

	element := it.at(it.next)
	it.lastIndex = it.next
	it.next++

	return element, nil
}

func (it *indexIterator[E]) Remove() error {
	if it.lastIndex < 0 {
		return observed.ErrIllegalState
	}

	it.removeAt(it.lastIndex)
	it.next = it.lastIndex
	it.lastIndex = -1

	return nil
}
