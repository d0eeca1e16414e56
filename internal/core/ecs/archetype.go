package ecs

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// AddArchetype declares a component signature and returns its id. Each kind
// in the signature gets a (possibly pre-existing) bucket in the kind index.
func (r *Registry) AddArchetype(kinds ...Kind) (ArchetypeID, error) {
	if len(kinds) == 0 {
		return 0, fmt.Errorf("%w: empty archetype signature", ErrCompositionMismatch)
	}
	var seen [kindCount]bool
	for _, k := range kinds {
		if !k.Valid() {
			return 0, fmt.Errorf("%w: invalid kind %s in signature", ErrCompositionMismatch, k)
		}
		if seen[k] {
			return 0, fmt.Errorf("%w: kind %s repeated in signature", ErrCompositionMismatch, k)
		}
		seen[k] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a := &archetype{
		id:        ArchetypeID(r.ids.Next()),
		signature: slices.Clone(kinds),
		members:   newOrderedSet[EntityID](),
	}
	r.archetypes[a.id] = a
	r.archOrder.Add(a.id)
	for _, k := range kinds {
		if r.kinds[k] == nil {
			r.kinds[k] = newOrderedSet[EntityID]()
		}
	}
	r.log.Debug("archetype added", zap.Uint64("archetype", uint64(a.id)), zap.Stringers("signature", kinds))
	return a.id, nil
}

// Instantiate registers an entity under archetype t. The payload kinds must
// match the signature positionally; on mismatch nothing is mutated.
func (r *Registry) Instantiate(t ArchetypeID, payloads ...Component) (EntityID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.archetypes[t]
	if !ok {
		return NoEntity, fmt.Errorf("%w: archetype %d", ErrUnknownIdentifier, t)
	}
	if err := validate(a.signature, payloads); err != nil {
		return NoEntity, fmt.Errorf("instantiate archetype %d: %w", t, err)
	}
	e := r.insert(a, payloads)
	return e.id, nil
}

// RemoveEntity removes entity id, which must be an instance of archetype t.
func (r *Registry) RemoveEntity(t ArchetypeID, id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.archetypes[t]
	if !ok {
		return fmt.Errorf("%w: archetype %d", ErrUnknownIdentifier, t)
	}
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	if !a.members.Has(id) {
		return fmt.Errorf("%w: entity %d is not an instance of archetype %d", ErrMembershipViolation, id, t)
	}
	r.purge(e)
	return nil
}

// Remove removes the entity behind a record previously returned by the
// registry. The record must still be the live record for its id.
func (r *Registry) Remove(e *Entity) error {
	if e == nil {
		return fmt.Errorf("%w: nil entity", ErrUnknownIdentifier)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	live, ok := r.entities[e.id]
	if !ok || live != e {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, e.id)
	}
	r.purge(e)
	return nil
}

// RemoveArchetype deletes every instance of t from every index, then t itself,
// then prunes the kind buckets nothing declares or populates anymore.
func (r *Registry) RemoveArchetype(t ArchetypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.archetypes[t]
	if !ok {
		return fmt.Errorf("%w: archetype %d", ErrUnknownIdentifier, t)
	}
	members := a.members.Slice()
	for _, id := range members {
		r.purge(r.entities[id])
	}
	delete(r.archetypes, t)
	r.archOrder.Remove(t)
	r.pruneKinds(a.signature)
	r.log.Debug("archetype removed", zap.Uint64("archetype", uint64(t)), zap.Int("instances", len(members)))
	return nil
}

// Signature returns the declared kinds of archetype t.
func (r *Registry) Signature(t ArchetypeID) ([]Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.archetypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: archetype %d", ErrUnknownIdentifier, t)
	}
	return slices.Clone(a.signature), nil
}

// ArchetypeOf returns the archetype entity id was instantiated under.
func (r *Registry) ArchetypeOf(id EntityID) (ArchetypeID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	if !ok {
		return 0, fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	if e.archetype == 0 {
		return 0, fmt.Errorf("%w: entity %d was registered without an archetype", ErrUnknownIdentifier, id)
	}
	return e.archetype, nil
}
