package component

import (
	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/core/ecs"
)

// Audio attaches a decoded sound to an entity. The buffer is shared by every
// entity of the same kind; playing it never consumes it.
type Audio struct {
	ecs.Owned
	Sound  *beep.Buffer
	Played bool
}

func (*Audio) Kind() ecs.Kind { return ecs.KindAudio }
