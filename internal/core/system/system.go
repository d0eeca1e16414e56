package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: spawn chances, player input
	PhasePreUpdate               // 1: process last frame's events, snapshot lists
	PhaseUpdate                  // 2: movers, animation, lifetime decay
	PhasePostUpdate              // 3: collisions
	PhaseOutput                  // 4: render + audio
	PhaseCleanup                 // 5: flush the despawn queue
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}

// Func adapts a function to a System in the given phase.
func Func(phase Phase, fn func(dt time.Duration) error) System {
	return funcSystem{phase: phase, fn: fn}
}

type funcSystem struct {
	phase Phase
	fn    func(dt time.Duration) error
}

func (f funcSystem) Phase() Phase                  { return f.phase }
func (f funcSystem) Update(dt time.Duration) error { return f.fn(dt) }
