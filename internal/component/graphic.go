package component

import (
	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/aliens/internal/core/ecs"
)

// Graphic is the visual surface of an entity and where it sits on screen.
// Pure data; systems move the rect and swap the sprite.
type Graphic struct {
	ecs.Owned
	Sprite *Sprite
	Rect   Rect
}

func (*Graphic) Kind() ecs.Kind { return ecs.KindGraphic }

// NewGraphic places sprite with its top-left corner at (x, y).
func NewGraphic(sprite *Sprite, x, y int) *Graphic {
	return &Graphic{
		Sprite: sprite,
		Rect:   Rect{X: x, Y: y, W: sprite.Width(), H: sprite.Height()},
	}
}

// AnimationCycle rotates a Graphic through Frames, one step every Interval ticks.
type AnimationCycle struct {
	ecs.Owned
	Frames   []*Sprite
	Interval int
	Count    int
}

func (*AnimationCycle) Kind() ecs.Kind { return ecs.KindAnimationCycle }

func NewAnimationCycle(frames []*Sprite, interval int) *AnimationCycle {
	return &AnimationCycle{Frames: frames, Interval: max(interval, 1)}
}

// Text is a line of HUD text; RewriteText renders it into the Graphic.
type Text struct {
	ecs.Owned
	Text  string
	Style tcell.Style
}

func (*Text) Kind() ecs.Kind { return ecs.KindText }
