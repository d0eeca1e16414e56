package system

import (
	"errors"

	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
)

// DecayLifetimes counts every entity's Lifetime down by one and despawns the
// ones that reach zero. Pass the registry to remove at once, or its
// Deferred despawner when running alongside other systems.
func DecayLifetimes(entities []*ecs.Entity, d ecs.Despawner) error {
	var errs []error
	for _, e := range entities {
		l, ok := ecs.Get[*component.Lifetime](e)
		if !ok {
			continue
		}
		l.Remaining--
		if l.Remaining <= 0 {
			if err := d.Despawn(e.ID()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
