package ecs

import (
	"errors"

	"go.uber.org/zap"
)

// Despawner removes an entity from every index. The registry despawns
// immediately; Deferred queues the request for the cleanup phase.
type Despawner interface {
	Despawn(id EntityID) error
}

// MarkForDespawn queues an entity for removal at the end of the frame. Safe to
// call from concurrent systems; an id queued twice is removed once.
func (r *Registry) MarkForDespawn(id EntityID) {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	if _, ok := r.queued[id]; ok {
		return
	}
	r.queued[id] = struct{}{}
	r.queue = append(r.queue, id)
}

// Pending reports how many despawns are queued.
func (r *Registry) Pending() int {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	return len(r.queue)
}

// Marked reports whether id is waiting in the despawn queue.
func (r *Registry) Marked(id EntityID) bool {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	_, ok := r.queued[id]
	return ok
}

// FlushDespawnQueue despawns every queued entity and clears the queue. Ids
// that were already removed by a direct call are reported in the joined error.
func (r *Registry) FlushDespawnQueue() (int, error) {
	r.queueMu.Lock()
	queue := r.queue
	r.queue = make([]EntityID, 0, cap(queue))
	clear(r.queued)
	r.queueMu.Unlock()

	var errs []error
	n := 0
	for _, id := range queue {
		if err := r.Despawn(id); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	if len(queue) > 0 {
		r.log.Debug("despawn queue flushed", zap.Int("despawned", n), zap.Int("failed", len(errs)))
	}
	return n, errors.Join(errs...)
}

type deferred struct{ r *Registry }

func (d deferred) Despawn(id EntityID) error {
	d.r.MarkForDespawn(id)
	return nil
}

// Deferred returns a Despawner that queues instead of removing, for systems
// running concurrently inside one frame.
func (r *Registry) Deferred() Despawner {
	return deferred{r: r}
}
