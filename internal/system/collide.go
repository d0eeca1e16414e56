package system

import (
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
)

// rects collects the Graphic rectangles of entities. An entity without a
// Graphic gets an empty rect, which never collides.
func rects(entities []*ecs.Entity) []component.Rect {
	out := make([]component.Rect, len(entities))
	for i, e := range entities {
		if g, ok := ecs.Get[*component.Graphic](e); ok {
			out[i] = g.Rect
		}
	}
	return out
}

func rectOf(e *ecs.Entity) component.Rect {
	if g, ok := ecs.Get[*component.Graphic](e); ok {
		return g.Rect
	}
	return component.Rect{}
}

// CollideList returns the index of the first entity in others that e
// overlaps, or -1.
func CollideList(e *ecs.Entity, others []*ecs.Entity) int {
	return rectOf(e).CollideList(rects(others))
}

// CollideListFunc calls handler with the first collision of e, if any.
func CollideListFunc(e *ecs.Entity, others []*ecs.Entity, handler func(others []*ecs.Entity, hit int) error) error {
	if hit := CollideList(e, others); hit >= 0 {
		return handler(others, hit)
	}
	return nil
}

// CollideLists maps the index of each entity in a to the indices in b it
// overlaps. Entities with no collision are absent.
func CollideLists(a, b []*ecs.Entity) map[int][]int {
	targets := rects(b)
	hits := make(map[int][]int)
	for i, e := range a {
		if idx := rectOf(e).CollideListAll(targets); len(idx) > 0 {
			hits[i] = idx
		}
	}
	return hits
}

// CollideListsFunc calls handler for every entity of a that overlaps
// something in b, in the order of a. It stops at the first handler error.
func CollideListsFunc(a, b []*ecs.Entity, handler func(e *ecs.Entity, others []*ecs.Entity, hits []int) error) error {
	targets := rects(b)
	for _, e := range a {
		if idx := rectOf(e).CollideListAll(targets); len(idx) > 0 {
			if err := handler(e, b, idx); err != nil {
				return err
			}
		}
	}
	return nil
}
