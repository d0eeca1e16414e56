package ecs

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"sync/atomic"
)

// EntityID identifies a registered entity. Zero is never allocated.
type EntityID uint64

// ArchetypeID identifies a declared component signature.
type ArchetypeID uint64

// NoEntity is the owner of a payload that has not been registered yet.
const NoEntity EntityID = 0

// IDGenerator hands out identifiers from a monotonic counter. With a random
// prefix the upper 32 bits are fixed per generator so ids from independent
// registries are unlikely to collide; the lower 32 bits count from 1.
type IDGenerator struct {
	prefix uint64
	next   atomic.Uint64
}

func NewIDGenerator(randomPrefix bool) *IDGenerator {
	g := &IDGenerator{}
	if randomPrefix {
		g.prefix = uint64(rand.Uint32()) << 32
	}
	return g
}

// Next advances the counter. Safe for concurrent use.
func (g *IDGenerator) Next() uint64 {
	return g.prefix | g.next.Add(1)
}

// Seq is the infinite, lazily evaluated form of Next.
func (g *IDGenerator) Seq() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for yield(g.Next()) {
		}
	}
}

// Entity is the registry's record for one entity: its id, the archetype it was
// instantiated under (zero for free-form registration) and its payloads.
// A record is immutable once registered, so systems may read it without locks.
type Entity struct {
	id        EntityID
	archetype ArchetypeID
	order     []Kind
	slots     [kindCount]Component
}

func (e *Entity) ID() EntityID { return e.id }

// Archetype reports the archetype the entity was instantiated under.
func (e *Entity) Archetype() (ArchetypeID, bool) {
	return e.archetype, e.archetype != 0
}

// Kinds returns the payload kinds in the order they were supplied.
func (e *Entity) Kinds() []Kind {
	return append([]Kind(nil), e.order...)
}

// Components returns the payloads in the order they were supplied.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.order))
	for i, k := range e.order {
		out[i] = e.slots[k]
	}
	return out
}

func (e *Entity) Get(k Kind) (Component, bool) {
	if !k.Valid() {
		return nil, false
	}
	c := e.slots[k]
	return c, c != nil
}

func (e *Entity) Has(k Kind) bool {
	return k.Valid() && e.slots[k] != nil
}

// Get returns the entity's payload of type T.
func Get[T Component](e *Entity) (T, bool) {
	var zero T
	c, ok := e.Get(zero.Kind())
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	return t, ok
}

// MustGet is Get for systems that only receive entities of a known composition.
func MustGet[T Component](e *Entity) T {
	t, ok := Get[T](e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no %s payload", e.id, zero.Kind()))
	}
	return t
}
