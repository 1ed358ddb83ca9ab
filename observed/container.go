package observed

import (
	"iter"
)

// Container is the contract a wrapped container has to satisfy.
// The boolean results report whether the call changed the container, e.g. a set returns
// false when adding an element it already holds.
type Container[E any] interface {
	View[E]

	Add(element E) (bool, error)
	AddAll(elements []E) (bool, error)
	Remove(element E) (bool, error)
	RemoveAll(elements []E) (bool, error)
	RetainAll(elements []E) (bool, error)
	Clear() error
	Iterator() Iterator[E]
}

// View is the read-only face of a container.
type View[E any] interface {
	Len() int
	Contains(element E) bool
	ContainsAll(elements []E) bool
	All() iter.Seq[E]
}

// Iterator is a single-pass iterator with removal support.
//
// Next returns ErrNoSuchElement when the iterator is exhausted.
// Remove removes the element returned by the last call to Next and returns ErrIllegalState
// if Next has not been called yet or the element was already removed.
type Iterator[E any] interface {
	HasNext() bool
	Next() (E, error)
	Remove() error
}
