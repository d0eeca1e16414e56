package component

import (
	"fmt"

	"github.com/l1jgo/aliens/internal/core/ecs"
)

// Direction is a horizontal heading.
type Direction int

const (
	Left  Direction = -1
	None  Direction = 0
	Right Direction = 1
)

type Velocity struct {
	ecs.Owned
	X, Y int
}

func (*Velocity) Kind() ecs.Kind { return ecs.KindVelocity }

// HorizontalOrientation holds the surfaces shown when moving left or right.
type HorizontalOrientation struct {
	ecs.Owned
	Left          *Sprite
	Right         *Sprite
	LastDirection Direction
}

func (*HorizontalOrientation) Kind() ecs.Kind { return ecs.KindHorizontalOrientation }

// NewHorizontalOrientation needs at least one of the two surfaces. The
// initial heading is Left, matching a sprite drawn facing left.
func NewHorizontalOrientation(left, right *Sprite) (*HorizontalOrientation, error) {
	if left == nil && right == nil {
		return nil, fmt.Errorf("%w: horizontal orientation needs a left or right surface", ecs.ErrInvalidConfiguration)
	}
	return &HorizontalOrientation{Left: left, Right: right, LastDirection: Left}, nil
}

// Lifetime counts down once per frame; the entity despawns at zero.
type Lifetime struct {
	ecs.Owned
	Remaining int
}

func (*Lifetime) Kind() ecs.Kind { return ecs.KindLifetime }
