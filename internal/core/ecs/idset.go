package ecs

import "slices"

// orderedSet keeps insertion order and gives O(1) membership. Removal shifts
// the tail, which is fine for the bucket sizes a game session produces.
type orderedSet[K comparable] struct {
	items []K
	pos   map[K]int
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{pos: make(map[K]int)}
}

func (s *orderedSet[K]) Len() int { return len(s.items) }

func (s *orderedSet[K]) Has(k K) bool {
	_, ok := s.pos[k]
	return ok
}

func (s *orderedSet[K]) At(i int) K { return s.items[i] }

// Add appends k; it reports false if k was already present.
func (s *orderedSet[K]) Add(k K) bool {
	if _, ok := s.pos[k]; ok {
		return false
	}
	s.pos[k] = len(s.items)
	s.items = append(s.items, k)
	return true
}

// Remove deletes k preserving the order of the rest.
func (s *orderedSet[K]) Remove(k K) bool {
	i, ok := s.pos[k]
	if !ok {
		return false
	}
	delete(s.pos, k)
	s.items = slices.Delete(s.items, i, i+1)
	for j := i; j < len(s.items); j++ {
		s.pos[s.items[j]] = j
	}
	return true
}

func (s *orderedSet[K]) Slice() []K {
	return slices.Clone(s.items)
}
