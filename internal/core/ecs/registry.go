package ecs

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type archetype struct {
	id        ArchetypeID
	signature []Kind
	members   *orderedSet[EntityID]
}

// Registry owns every entity record and keeps the kind, archetype and group
// indices in lock-step with the primary map. Structural operations take the
// write lock and either complete on every index or fail before touching any.
type Registry struct {
	mu       sync.RWMutex
	instance uuid.UUID
	ids      *IDGenerator
	log      *zap.Logger

	entities   map[EntityID]*Entity
	order      *orderedSet[EntityID]
	archetypes map[ArchetypeID]*archetype
	archOrder  *orderedSet[ArchetypeID]
	kinds      [kindCount]*orderedSet[EntityID] // nil: kind not known
	groups     map[string]*orderedSet[EntityID]
	groupOrder *orderedSet[string]

	queueMu sync.Mutex
	queue   []EntityID
	queued  map[EntityID]struct{}
}

type options struct {
	log          *zap.Logger
	randomPrefix bool
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRandomIDPrefix makes ids carry a random per-registry prefix.
func WithRandomIDPrefix(enabled bool) Option {
	return func(o *options) { o.randomPrefix = enabled }
}

func New(opts ...Option) *Registry {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	instance := uuid.New()
	return &Registry{
		instance:   instance,
		ids:        NewIDGenerator(o.randomPrefix),
		log:        o.log.With(zap.Stringer("registry", instance)),
		entities:   make(map[EntityID]*Entity, 256),
		order:      newOrderedSet[EntityID](),
		archetypes: make(map[ArchetypeID]*archetype, 16),
		archOrder:  newOrderedSet[ArchetypeID](),
		groups:     make(map[string]*orderedSet[EntityID], 16),
		groupOrder: newOrderedSet[string](),
		queued:     make(map[EntityID]struct{}, 64),
	}
}

// InstanceID distinguishes registries in logs.
func (r *Registry) InstanceID() uuid.UUID { return r.instance }

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

func (r *Registry) Contains(id EntityID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entities[id]
	return ok
}

func (r *Registry) Entity(id EntityID) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	return e, nil
}

// EntityID finds the id of a record by identity with a linear scan. Callers
// should prefer e.ID(); this exists for code that only kept the record.
func (r *Registry) EntityID(e *Entity) (EntityID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order.items {
		if r.entities[id] == e {
			return id, nil
		}
	}
	return NoEntity, fmt.Errorf("%w: entity record not registered", ErrUnknownIdentifier)
}

// validate checks a payload list without mutating anything. When sig is non-nil
// the kinds must match it positionally. Caller holds the write lock.
func validate(sig []Kind, payloads []Component) error {
	if sig != nil && len(payloads) != len(sig) {
		return fmt.Errorf("%w: got %d payloads, signature has %d", ErrCompositionMismatch, len(payloads), len(sig))
	}
	var seen [kindCount]bool
	for i, c := range payloads {
		if isNil(c) {
			return fmt.Errorf("%w: payload %d is nil", ErrCompositionMismatch, i)
		}
		k := c.Kind()
		if !k.Valid() {
			return fmt.Errorf("%w: payload %d has invalid kind %s", ErrCompositionMismatch, i, k)
		}
		if sig != nil && sig[i] != k {
			return fmt.Errorf("%w: payload %d is %s, signature expects %s", ErrCompositionMismatch, i, k, sig[i])
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate %s payload", ErrCompositionMismatch, k)
		}
		seen[k] = true
		if owner := c.Owner(); owner != NoEntity {
			return fmt.Errorf("%w: %s payload already attached to entity %d", ErrCompositionMismatch, k, owner)
		}
	}
	return nil
}

// isNil also catches a nil pointer stored in a non-nil interface, which
// would panic on the first method that touches the embedded Owned.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// insert allocates an id, stamps the payloads and populates the primary map,
// the kind index and, for archetype instances, the archetype members.
// Caller holds the write lock and has validated the payloads.
func (r *Registry) insert(a *archetype, payloads []Component) *Entity {
	e := &Entity{
		id:    EntityID(r.ids.Next()),
		order: make([]Kind, len(payloads)),
	}
	for i, c := range payloads {
		k := c.Kind()
		c.ownership().owner = e.id
		e.order[i] = k
		e.slots[k] = c
		if r.kinds[k] == nil {
			r.kinds[k] = newOrderedSet[EntityID]()
		}
		r.kinds[k].Add(e.id)
	}
	if a != nil {
		e.archetype = a.id
		a.members.Add(e.id)
	}
	r.entities[e.id] = e
	r.order.Add(e.id)
	return e
}

// purge removes e from every index. Caller holds the write lock.
func (r *Registry) purge(e *Entity) {
	for _, k := range e.order {
		if s := r.kinds[k]; s != nil {
			s.Remove(e.id)
		}
	}
	if a, ok := r.archetypes[e.archetype]; ok {
		a.members.Remove(e.id)
	}
	for _, name := range r.groupOrder.items {
		r.groups[name].Remove(e.id)
	}
	delete(r.entities, e.id)
	r.order.Remove(e.id)
	r.pruneKinds(e.order)
}

// pruneKinds drops kind buckets that are empty and not declared by a live
// archetype signature. Caller holds the write lock.
func (r *Registry) pruneKinds(kinds []Kind) {
	for _, k := range kinds {
		s := r.kinds[k]
		if s == nil || s.Len() > 0 || r.declared(k) {
			continue
		}
		r.kinds[k] = nil
	}
}

func (r *Registry) declared(k Kind) bool {
	for _, a := range r.archetypes {
		for _, sk := range a.signature {
			if sk == k {
				return true
			}
		}
	}
	return false
}
