package ecs

import (
	"fmt"
	"iter"
)

// Queries return lazy sequences over the live indices. Every step takes the
// read lock only long enough to fetch the next element, so a sequence observes
// mutations made between steps and a loop body may call back into the registry.
// Structural changes made while iterating shift later elements; materialize
// with slices.Collect before handing a list to code that despawns.

// walk yields the records of the bucket returned by set, re-resolving the
// bucket at every step so a deleted bucket simply ends the sequence.
func (r *Registry) walk(set func() *orderedSet[EntityID]) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for i := 0; ; i++ {
			r.mu.RLock()
			s := set()
			if s == nil || i >= s.Len() {
				r.mu.RUnlock()
				return
			}
			e := r.entities[s.At(i)]
			r.mu.RUnlock()
			if !yield(e) {
				return
			}
		}
	}
}

func walkKeys[K comparable](r *Registry, set *orderedSet[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; ; i++ {
			r.mu.RLock()
			if i >= set.Len() {
				r.mu.RUnlock()
				return
			}
			k := set.At(i)
			r.mu.RUnlock()
			if !yield(k) {
				return
			}
		}
	}
}

// Entities yields every registered entity in registration order.
func (r *Registry) Entities() iter.Seq[*Entity] {
	return r.walk(func() *orderedSet[EntityID] { return r.order })
}

func (r *Registry) EntityIDs() iter.Seq[EntityID] {
	return walkKeys(r, r.order)
}

// Archetypes yields the ids of live archetypes in creation order.
func (r *Registry) Archetypes() iter.Seq[ArchetypeID] {
	return walkKeys(r, r.archOrder)
}

// Groups yields group names in creation order.
func (r *Registry) Groups() iter.Seq[string] {
	return walkKeys(r, r.groupOrder)
}

// Kinds yields the kinds that currently have a bucket in the kind index.
func (r *Registry) Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := Kind(0); k < kindCount; k++ {
			r.mu.RLock()
			known := r.kinds[k] != nil
			r.mu.RUnlock()
			if known && !yield(k) {
				return
			}
		}
	}
}

// EntitiesOfArchetype yields the instances of archetype t.
func (r *Registry) EntitiesOfArchetype(t ArchetypeID) (iter.Seq[*Entity], error) {
	r.mu.RLock()
	_, ok := r.archetypes[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: archetype %d", ErrUnknownIdentifier, t)
	}
	return r.walk(func() *orderedSet[EntityID] {
		if a, ok := r.archetypes[t]; ok {
			return a.members
		}
		return nil
	}), nil
}

// EntitiesInGroup yields the members of a group in enlistment order.
func (r *Registry) EntitiesInGroup(name string) (iter.Seq[*Entity], error) {
	r.mu.RLock()
	_, ok := r.groups[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrUnknownIdentifier, name)
	}
	return r.walk(func() *orderedSet[EntityID] { return r.groups[name] }), nil
}

// EntitiesWithKind yields every entity carrying a payload of kind k.
func (r *Registry) EntitiesWithKind(k Kind) iter.Seq[*Entity] {
	return r.walk(func() *orderedSet[EntityID] {
		if !k.Valid() {
			return nil
		}
		return r.kinds[k]
	})
}

// ComponentsOfKind yields the payloads of kind k directly.
func (r *Registry) ComponentsOfKind(k Kind) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for e := range r.EntitiesWithKind(k) {
			if !yield(e.slots[k]) {
				return
			}
		}
	}
}

// Instances yields every payload of type T.
func Instances[T Component](r *Registry) iter.Seq[T] {
	var zero T
	k := zero.Kind()
	return func(yield func(T) bool) {
		for c := range r.ComponentsOfKind(k) {
			t, ok := c.(T)
			if ok && !yield(t) {
				return
			}
		}
	}
}

func (r *Registry) bucketLen(k Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s := r.kinds[k]; s != nil {
		return s.Len()
	}
	return 0
}

// Each2 calls fn for entities carrying both A and B.
// It walks the smaller kind bucket and checks the other payload on the record.
func Each2[A, B Component](r *Registry, fn func(*Entity, A, B)) {
	var za A
	var zb B
	k := za.Kind()
	if r.bucketLen(zb.Kind()) < r.bucketLen(k) {
		k = zb.Kind()
	}
	for e := range r.EntitiesWithKind(k) {
		a, ok := Get[A](e)
		if !ok {
			continue
		}
		if b, ok := Get[B](e); ok {
			fn(e, a, b)
		}
	}
}

// Each3 calls fn for entities carrying A, B and C.
func Each3[A, B, C Component](r *Registry, fn func(*Entity, A, B, C)) {
	var za A
	var zb B
	var zc C
	k := za.Kind()
	smallest := r.bucketLen(k)
	for _, other := range []Kind{zb.Kind(), zc.Kind()} {
		if n := r.bucketLen(other); n < smallest {
			k, smallest = other, n
		}
	}
	for e := range r.EntitiesWithKind(k) {
		a, ok := Get[A](e)
		if !ok {
			continue
		}
		b, ok := Get[B](e)
		if !ok {
			continue
		}
		if c, ok := Get[C](e); ok {
			fn(e, a, b, c)
		}
	}
}
