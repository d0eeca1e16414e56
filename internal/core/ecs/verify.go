package ecs

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Verify checks that the primary map and every secondary index agree and
// returns all violations joined. It takes the read lock for the whole check.
func (r *Registry) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if r.order.Len() != len(r.entities) {
		fail("primary order has %d ids, map has %d", r.order.Len(), len(r.entities))
	}
	for id, e := range r.entities {
		if e.id != id {
			fail("entity %d stored under id %d", e.id, id)
		}
		if !r.order.Has(id) {
			fail("entity %d missing from primary order", id)
		}
		for _, k := range e.order {
			c := e.slots[k]
			if c == nil {
				fail("entity %d lists %s without a payload", id, k)
				continue
			}
			if c.Owner() != id {
				fail("entity %d %s payload owned by %d", id, k, c.Owner())
			}
			if s := r.kinds[k]; s == nil || !s.Has(id) {
				fail("entity %d missing from %s index", id, k)
			}
		}
		if e.archetype != 0 {
			a, ok := r.archetypes[e.archetype]
			switch {
			case !ok:
				fail("entity %d refers to missing archetype %d", id, e.archetype)
			case !a.members.Has(id):
				fail("entity %d missing from archetype %d members", id, e.archetype)
			case !equalKinds(a.signature, e.order):
				fail("entity %d kinds %v do not match archetype %d signature %v", id, e.order, a.id, a.signature)
			}
		}
	}

	for k, s := range r.kinds {
		if s == nil {
			continue
		}
		for _, id := range s.items {
			e, ok := r.entities[id]
			if !ok {
				fail("%s index holds unknown entity %d", Kind(k), id)
			} else if !e.Has(Kind(k)) {
				fail("%s index holds entity %d without that payload", Kind(k), id)
			}
		}
		if s.Len() == 0 && !r.declared(Kind(k)) {
			fail("%s bucket is empty and undeclared", Kind(k))
		}
	}
	for _, a := range r.archetypes {
		if !r.archOrder.Has(a.id) {
			fail("archetype %d missing from archetype order", a.id)
		}
		for _, id := range a.members.items {
			if e, ok := r.entities[id]; !ok || e.archetype != a.id {
				fail("archetype %d holds foreign or unknown entity %d", a.id, id)
			}
		}
	}
	for name, g := range r.groups {
		if !r.groupOrder.Has(name) {
			fail("group %q missing from group order", name)
		}
		for _, id := range g.items {
			if _, ok := r.entities[id]; !ok {
				fail("group %q holds unknown entity %d", name, id)
			}
		}
	}
	return errors.Join(errs...)
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Digest hashes the canonical index state: entities with their archetype and
// kinds, archetype signatures and members, kind buckets and groups. The id
// generator is not part of the state, so a register/unregister round trip
// leaves the digest unchanged.
func (r *Registry) Digest() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	section := func(tag string, n int) {
		_, _ = h.WriteString(tag)
		put(uint64(n))
	}

	section("entities", r.order.Len())
	for _, id := range r.order.items {
		e := r.entities[id]
		put(uint64(id))
		put(uint64(e.archetype))
		put(uint64(len(e.order)))
		for _, k := range e.order {
			put(uint64(k))
		}
	}
	section("archetypes", r.archOrder.Len())
	for _, t := range r.archOrder.items {
		a := r.archetypes[t]
		put(uint64(t))
		put(uint64(len(a.signature)))
		for _, k := range a.signature {
			put(uint64(k))
		}
		put(uint64(a.members.Len()))
		for _, id := range a.members.items {
			put(uint64(id))
		}
	}
	section("kinds", int(kindCount))
	for k, s := range r.kinds {
		if s == nil {
			continue
		}
		put(uint64(k))
		put(uint64(s.Len()))
		for _, id := range s.items {
			put(uint64(id))
		}
	}
	section("groups", r.groupOrder.Len())
	for _, name := range r.groupOrder.items {
		g := r.groups[name]
		put(uint64(len(name)))
		_, _ = h.WriteString(name)
		put(uint64(g.Len()))
		for _, id := range g.items {
			put(uint64(id))
		}
	}
	return h.Sum64()
}
