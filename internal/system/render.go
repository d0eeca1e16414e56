package system

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	coresys "github.com/l1jgo/aliens/internal/core/system"
)

// RenderSystem draws every Graphic payload onto a terminal screen.
// Phase 4 (Output). Blank cells in a sprite are transparent.
type RenderSystem struct {
	screen tcell.Screen
	reg    *ecs.Registry
	bg     tcell.Style
}

func NewRenderSystem(screen tcell.Screen, reg *ecs.Registry, bg tcell.Style) *RenderSystem {
	return &RenderSystem{screen: screen, reg: reg, bg: bg}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) error {
	s.screen.SetStyle(s.bg)
	s.screen.Clear()
	for g := range ecs.Instances[*component.Graphic](s.reg) {
		s.draw(g)
	}
	s.screen.Show()
	return nil
}

func (s *RenderSystem) draw(g *component.Graphic) {
	if g.Sprite == nil {
		return
	}
	w, h := s.screen.Size()
	for dy, row := range g.Sprite.Rows {
		y := g.Rect.Y + dy
		if y < 0 || y >= h {
			continue
		}
		x := g.Rect.X
		for _, r := range row {
			if r != ' ' && x >= 0 && x < w {
				s.screen.SetContent(x, y, r, nil, g.Sprite.Style)
			}
			x += component.CellWidth(r)
		}
	}
}
