package containers

import (
	"iter"
	"slices"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// List is a slice backed container that allows duplicates.
// A capacity of zero means unbounded.
type List[E comparable] struct {
	elements []E
	capacity int
}

// NewList creates an unbounded List holding elements.
func NewList[E comparable](elements ...E) *List[E] {
	return &List[E]{elements: slices.Clone(elements)}
}

// NewBoundedList creates an empty List that never holds more than capacity elements.
func NewBoundedList[E comparable](capacity int) (*List[E], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &List[E]{elements: make([]E, 0, capacity), capacity: capacity}, nil
}

// Add appends element.
func (l *List[E]) Add(element E) (bool, error) {
	if err := l.checkCapacity(1); err != nil {
		return false, err
	}

	l.elements = append(l.elements, element)

	return true, nil
}

// AddAll appends all elements, or none of them if the capacity would be exceeded.
func (l *List[E]) AddAll(elements []E) (bool, error) {
	if len(elements) == 0 {
		return false, nil
	}

	if err := l.checkCapacity(len(elements)); err != nil {
		return false, err
	}

	l.elements = append(l.elements, elements...)

	return true, nil
}

// Remove removes the first occurrence of element.
func (l *List[E]) Remove(element E) (bool, error) {
	index := slices.Index(l.elements, element)
	if index < 0 {
		return false, nil
	}

	l.removeAt(index)

	return true, nil
}

// RemoveAll removes every occurrence of every element in elements.
func (l *List[E]) RemoveAll(elements []E) (bool, error) {
	members := toMembers(elements)
	sizeBefore := len(l.elements)

	l.elements = slices.DeleteFunc(l.elements, func(e E) bool {
		_, ok := members[e]
		return ok
	})

	return len(l.elements) < sizeBefore, nil
}

// RetainAll removes every element that is not in elements.
func (l *List[E]) RetainAll(elements []E) (bool, error) {
	members := toMembers(elements)
	sizeBefore := len(l.elements)

	l.elements = slices.DeleteFunc(l.elements, func(e E) bool {
		_, ok := members[e]
		return !ok
	})

	return len(l.elements) < sizeBefore, nil
}

// Clear removes all elements.
func (l *List[E]) Clear() error {
	clear(l.elements)
	l.elements = l.elements[:0]

	return nil
}

func (l *List[E]) Len() int {
	return len(l.elements)
}

func (l *List[E]) Contains(element E) bool {
	return slices.Contains(l.elements, element)
}

func (l *List[E]) ContainsAll(elements []E) bool {
	for _, element := range elements {
		if !l.Contains(element) {
			return false
		}
	}

	return true
}

// All returns the elements in order. The List must not be modified while ranging over it.
func (l *List[E]) All() iter.Seq[E] {
	return slices.Values(l.elements)
}

// Elements returns a copy of the elements in order.
func (l *List[E]) Elements() []E {
	return slices.Clone(l.elements)
}

func (l *List[E]) Iterator() observed.Iterator[E] {
	return newIndexIterator(
		func(index int) E { return l.elements[index] },
		l.Len,
		l.removeAt,
	)
}

func (l *List[E]) removeAt(index int) {
	l.elements = slices.Delete(l.elements, index, index+1)
}

func (l *List[E]) checkCapacity(additional int) error {
	if l.capacity > 0 && len(l.elements)+additional > l.capacity {
		return ErrCapacityExceeded
	}

	return nil
}

func toMembers[E comparable](elements []E) map[E]struct{} {
	members := make(map[E]struct{}, len(elements))
	for _, element := range elements {
		members[element] = struct{}{}
	}

	return members
}

var _ observed.Container[int] = (*List[int])(nil)
