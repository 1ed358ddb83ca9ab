package containers

import (
	"iter"
	"slices"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// Set is an insertion ordered set. Adding an element it already holds reports no change.
type Set[E comparable] struct {
	order   []E
	members map[E]struct{}
}

// NewSet creates a Set holding elements, duplicates are dropped.
func NewSet[E comparable](elements ...E) *Set[E] {
	s := &Set[E]{members: make(map[E]struct{}, len(elements))}
	for _, element := range elements {
		s.add(element)
	}

	return s
}

func (s *Set[E]) Add(element E) (bool, error) {
	return s.add(element), nil
}

func (s *Set[E]) AddAll(elements []E) (bool, error) {
	changed := false
	for _, element := range elements {
		if s.add(element) {
			changed = true
		}
	}

	return changed, nil
}

func (s *Set[E]) Remove(element E) (bool, error) {
	if _, ok := s.members[element]; !ok {
		return false, nil
	}

	s.removeAt(slices.Index(s.order, element))

	return true, nil
}

func (s *Set[E]) RemoveAll(elements []E) (bool, error) {
	members := toMembers(elements)
	return s.deleteWhere(func(e E) bool { _, ok := members[e]; return ok }), nil
}

func (s *Set[E]) RetainAll(elements []E) (bool, error) {
	members := toMembers(elements)
	return s.deleteWhere(func(e E) bool { _, ok := members[e]; return !ok }), nil
}

func (s *Set[E]) Clear() error {
	clear(s.members)
	clear(s.order)
	s.order = s.order[:0]

	return nil
}

func (s *Set[E]) Len() int {
	return len(s.order)
}

func (s *Set[E]) Contains(element E) bool {
	_, ok := s.members[element]
	return ok
}

func (s *Set[E]) ContainsAll(elements []E) bool {
	for _, element := range elements {
		if !s.Contains(element) {
			return false
		}
	}

	return true
}

// All returns the elements in insertion order. The Set must not be modified while ranging over it.
func (s *Set[E]) All() iter.Seq[E] {
	return slices.Values(s.order)
}

// Elements returns a copy of the elements in insertion order.
func (s *Set[E]) Elements() []E {
	return slices.Clone(s.order)
}

func (s *Set[E]) Iterator() observed.Iterator[E] {
	return newIndexIterator(
		func(index int) E { return s.order[index] },
		s.Len,
		s.removeAt,
	)
}

func (s *Set[E]) add(element E) bool {
	if _, ok := s.members[element]; ok {
		return false
	}

	s.members[element] = struct{}{}
	s.order = append(s.order, element)

	return true
}

func (s *Set[E]) removeAt(index int) {
	delete(s.members, s.order[index])
	s.order = slices.Delete(s.order, index, index+1)
}

func (s *Set[E]) deleteWhere(match func(E) bool) bool {
	sizeBefore := len(s.order)

	s.order = slices.DeleteFunc(s.order, func(e E) bool {
		if !match(e) {
			return false
		}

		delete(s.members, e)

		return true
	})

	return len(s.order) < sizeBefore
}

var _ observed.Container[int] = (*Set[int])(nil)
