package system

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	coresys "github.com/l1jgo/aliens/internal/core/system"
)

// Sink plays a sound buffer.
type Sink interface {
	Play(buf *beep.Buffer)
}

// AudioSystem plays each Audio payload once, the frame after its entity
// spawns. Phase 4 (Output).
type AudioSystem struct {
	reg  *ecs.Registry
	sink Sink
}

func NewAudioSystem(reg *ecs.Registry, sink Sink) *AudioSystem {
	return &AudioSystem{reg: reg, sink: sink}
}

func (s *AudioSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *AudioSystem) Update(_ time.Duration) error {
	for a := range ecs.Instances[*component.Audio](s.reg) {
		if a.Played {
			continue
		}
		a.Played = true
		s.sink.Play(a.Sound)
	}
	return nil
}
