package system

import (
	"fmt"

	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
)

func payloads[A, B ecs.Component](e *ecs.Entity) (A, B, error) {
	a, okA := ecs.Get[A](e)
	b, okB := ecs.Get[B](e)
	if !okA || !okB {
		return a, b, fmt.Errorf("%w: entity %d lacks %s or %s",
			ecs.ErrCompositionMismatch, e.ID(), a.Kind(), b.Kind())
	}
	return a, b, nil
}

// Move translates every entity's Graphic by its Velocity. Entities missing
// either payload are skipped.
func Move(entities []*ecs.Entity) {
	for _, e := range entities {
		g, v, err := payloads[*component.Graphic, *component.Velocity](e)
		if err != nil {
			continue
		}
		g.Rect.Move(v.X, v.Y)
	}
}

// MoveOriented moves a screen-bounded entity horizontally in dir, swapping
// its surface when the heading changes. The rect is clamped to [0, rightEdge].
func MoveOriented(e *ecs.Entity, dir component.Direction, rightEdge int) error {
	g, v, err := payloads[*component.Graphic, *component.Velocity](e)
	if err != nil {
		return err
	}
	o, ok := ecs.Get[*component.HorizontalOrientation](e)
	if !ok {
		return fmt.Errorf("%w: entity %d lacks %s", ecs.ErrCompositionMismatch, e.ID(), ecs.KindHorizontalOrientation)
	}

	if dir != component.None && dir != o.LastDirection {
		surface := o.Right
		if dir == component.Left {
			surface = o.Left
		}
		if surface != nil {
			g.Sprite = surface
			g.Rect.W, g.Rect.H = surface.Width(), surface.Height()
		}
		o.LastDirection = dir
	}

	g.Rect.Move(v.X*int(dir), v.Y)
	g.Rect.X = max(g.Rect.X, 0)
	if g.Rect.Right() > rightEdge {
		g.Rect.X = rightEdge - g.Rect.W
	}
	return nil
}

// RotateAnimation advances each entity's animation counter and shows frame
// Count/Interval of the cycle. An entity whose current surface is not part
// of its cycle is left alone.
func RotateAnimation(entities []*ecs.Entity) {
	for _, e := range entities {
		g, a, err := payloads[*component.Graphic, *component.AnimationCycle](e)
		if err != nil || len(a.Frames) == 0 {
			continue
		}
		for _, f := range a.Frames {
			if f != g.Sprite {
				continue
			}
			a.Count++
			g.Sprite = a.Frames[a.Count/max(a.Interval, 1)%len(a.Frames)]
			break
		}
	}
}

// RewriteText replaces an entity's text and redraws its graphic from it.
func RewriteText(e *ecs.Entity, text string) error {
	g, t, err := payloads[*component.Graphic, *component.Text](e)
	if err != nil {
		return err
	}
	t.Text = text
	g.Sprite = component.TextSprite(text, t.Style)
	g.Rect.W, g.Rect.H = g.Sprite.Width(), g.Sprite.Height()
	return nil
}
