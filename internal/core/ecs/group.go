package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// Register adds a free-form entity carrying any combination of kinds.
func (r *Registry) Register(payloads ...Component) (EntityID, error) {
	if len(payloads) == 0 {
		return NoEntity, fmt.Errorf("%w: entity has no payloads", ErrCompositionMismatch)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validate(nil, payloads); err != nil {
		return NoEntity, fmt.Errorf("register: %w", err)
	}
	e := r.insert(nil, payloads)
	return e.id, nil
}

// Unregister removes an entity from the primary map and every kind and
// archetype index. An entity still enlisted in a group must be despawned.
func (r *Registry) Unregister(id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	if name, grouped := r.firstGroupOf(id); grouped {
		return fmt.Errorf("%w: entity %d is still enlisted in group %q", ErrMembershipViolation, id, name)
	}
	r.purge(e)
	return nil
}

// Despawn unregisters the entity and discharges it from every group.
func (r *Registry) Despawn(id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	r.purge(e)
	return nil
}

func (r *Registry) AddGroup(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateGroupName, name)
	}
	r.groups[name] = newOrderedSet[EntityID]()
	r.groupOrder.Add(name)
	r.log.Debug("group added", zap.String("group", name))
	return nil
}

// Enlist adds a registered entity to a group.
func (r *Registry) Enlist(name string, id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[name]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrUnknownIdentifier, name)
	}
	if _, ok := r.entities[id]; !ok {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	if !g.Add(id) {
		return fmt.Errorf("%w: entity %d already in group %q", ErrMembershipViolation, id, name)
	}
	return nil
}

// Discharge removes an entity from one group. The entity stays registered.
func (r *Registry) Discharge(name string, id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[name]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrUnknownIdentifier, name)
	}
	if !g.Remove(id) {
		return fmt.Errorf("%w: entity %d not in group %q", ErrMembershipViolation, id, name)
	}
	return nil
}

// DischargeFromAllGroups removes the entity from every group containing it.
func (r *Registry) DischargeFromAllGroups(id EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entities[id]; !ok {
		return fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	for _, name := range r.groupOrder.items {
		r.groups[name].Remove(id)
	}
	return nil
}

// DeleteGroup drops the bucket; its members remain registered.
func (r *Registry) DeleteGroup(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[name]; !ok {
		return fmt.Errorf("%w: group %q", ErrUnknownIdentifier, name)
	}
	delete(r.groups, name)
	r.groupOrder.Remove(name)
	r.log.Debug("group deleted", zap.String("group", name))
	return nil
}

// DeleteGroupAndEntities despawns every member of the group, then drops it.
func (r *Registry) DeleteGroupAndEntities(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[name]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrUnknownIdentifier, name)
	}
	members := g.Slice()
	for _, id := range members {
		r.purge(r.entities[id])
	}
	delete(r.groups, name)
	r.groupOrder.Remove(name)
	r.log.Debug("group deleted with members", zap.String("group", name), zap.Int("members", len(members)))
	return nil
}

// EntityGroups lists the groups containing the entity, in group creation order.
func (r *Registry) EntityGroups(id EntityID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.entities[id]; !ok {
		return nil, fmt.Errorf("%w: entity %d", ErrUnknownIdentifier, id)
	}
	var out []string
	for _, name := range r.groupOrder.items {
		if r.groups[name].Has(id) {
			out = append(out, name)
		}
	}
	return out, nil
}

func (r *Registry) firstGroupOf(id EntityID) (string, bool) {
	for _, name := range r.groupOrder.items {
		if r.groups[name].Has(id) {
			return name, true
		}
	}
	return "", false
}
