package system

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner executes systems in phase order each frame. Systems of a parallel
// phase run concurrently and the phase ends when all of them have returned.
type Runner struct {
	systems  []System
	sorted   bool
	parallel map[Phase]bool
}

func NewRunner() *Runner {
	return &Runner{
		systems:  make([]System, 0, 16),
		parallel: make(map[Phase]bool),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// SetParallel marks a phase as fork-join. Systems in that phase must not
// change registry structure directly; they queue despawns instead.
func (r *Runner) SetParallel(phase Phase, on bool) {
	r.parallel[phase] = on
}

// Tick runs every phase in order and stops at the first phase that fails.
func (r *Runner) Tick(dt time.Duration) error {
	r.ensureSorted()
	for i := 0; i < len(r.systems); {
		phase := r.systems[i].Phase()
		j := i
		for j < len(r.systems) && r.systems[j].Phase() == phase {
			j++
		}
		if err := r.run(phase, r.systems[i:j], dt); err != nil {
			return err
		}
		i = j
	}
	return nil
}

// TickPhase runs only the systems of the given phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) error {
	r.ensureSorted()
	var batch []System
	for _, s := range r.systems {
		if s.Phase() == phase {
			batch = append(batch, s)
		}
	}
	return r.run(phase, batch, dt)
}

func (r *Runner) run(phase Phase, batch []System, dt time.Duration) error {
	if r.parallel[phase] && len(batch) > 1 {
		var g errgroup.Group
		for _, s := range batch {
			g.Go(func() error { return s.Update(dt) })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}
		return nil
	}
	for _, s := range batch {
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}
	}
	return nil
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
