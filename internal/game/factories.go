package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/data"
	"go.uber.org/zap"
)

// Archetype, group and sprite names the game relies on.
const (
	archAlien     = "alien"
	archBomb      = "bomb"
	archAFV       = "afv"
	archShot      = "shot"
	archExplosion = "explosion"
	archText      = "text"

	GroupAliens     = "aliens"
	GroupBombs      = "bombs"
	GroupShots      = "shots"
	GroupExplosions = "explosions"
	GroupHUD        = "hud"
)

var (
	requiredArchetypes = []string{archAlien, archBomb, archAFV, archShot, archExplosion, archText}
	groups             = []string{GroupAliens, GroupBombs, GroupShots, GroupExplosions, GroupHUD}
	alienFrames        = []string{"alien_1", "alien_2", "alien_3"}
)

// sprites resolved from the sheet once at start-up.
type sprites struct {
	alien     []*component.Sprite
	bomb      *component.Sprite
	shot      *component.Sprite
	explosion *component.Sprite
	afvLeft   *component.Sprite
	afvRight  *component.Sprite
}

func resolveSprites(t *data.SpriteTable) (sprites, error) {
	var s sprites
	var err error
	if s.alien, err = t.Frames(alienFrames...); err != nil {
		return s, fmt.Errorf("%w: %v", ecs.ErrInvalidConfiguration, err)
	}
	single, err := t.Frames("bomb", "shot", "explosion", "afv_left", "afv")
	if err != nil {
		return s, fmt.Errorf("%w: %v", ecs.ErrInvalidConfiguration, err)
	}
	s.bomb, s.shot, s.explosion, s.afvLeft, s.afvRight = single[0], single[1], single[2], single[3], single[4]
	return s, nil
}

// spawn instantiates an archetype and enlists the new entity in group (if
// any). A failure leaves nothing behind and is logged; the caller skips
// the spawn for this frame.
func (g *Game) spawn(arch, group string, payloads ...ecs.Component) (ecs.EntityID, error) {
	id, err := g.reg.Instantiate(g.types[arch], payloads...)
	if err != nil {
		g.log.Warn("spawn failed", zap.String("archetype", arch), zap.Error(err))
		return ecs.NoEntity, err
	}
	if group == "" {
		return id, nil
	}
	if err := g.reg.Enlist(group, id); err != nil {
		g.log.Warn("enlist failed", zap.String("group", group), zap.Error(err))
		_ = g.reg.Despawn(id)
		return ecs.NoEntity, err
	}
	return id, nil
}

// sound wraps buf in an Audio payload. Without a sound bank the payload is
// silent and already played.
func sound(buf *beep.Buffer) *component.Audio {
	return &component.Audio{Sound: buf, Played: buf == nil}
}

// centered places sprite so its center sits on (x, y).
func centered(sprite *component.Sprite, x, y int) *component.Graphic {
	return component.NewGraphic(sprite, x-sprite.Width()/2, y-sprite.Height()/2)
}

func (g *Game) spawnAlien(x, y int) (ecs.EntityID, error) {
	return g.spawn(archAlien, GroupAliens,
		component.NewGraphic(g.sprites.alien[0], x, y),
		component.NewAnimationCycle(g.sprites.alien, g.cfg.AnimInterval),
		&component.Velocity{X: g.cfg.AlienSpeed},
	)
}

// spawnBomb drops a bomb whose top-center is (x, y).
func (g *Game) spawnBomb(x, y int) (ecs.EntityID, error) {
	gr := component.NewGraphic(g.sprites.bomb, x-g.sprites.bomb.Width()/2, y)
	return g.spawn(archBomb, GroupBombs, gr, &component.Velocity{Y: g.cfg.BombSpeed})
}

// spawnShot fires a shot whose bottom-center is (x, y).
func (g *Game) spawnShot(x, y int) (ecs.EntityID, error) {
	s := g.sprites.shot
	gr := component.NewGraphic(s, x-s.Width()/2, y-s.Height())
	return g.spawn(archShot, GroupShots, gr, &component.Velocity{Y: -g.cfg.ShotSpeed},
		sound(g.shotSound))
}

func (g *Game) spawnExplosion(x, y int) (ecs.EntityID, error) {
	return g.spawn(archExplosion, GroupExplosions,
		centered(g.sprites.explosion, x, y),
		&component.Lifetime{Remaining: g.cfg.ExplosionTicks},
		sound(g.explosionSound),
	)
}

func (g *Game) spawnAFV(x, y int) (ecs.EntityID, error) {
	o, err := component.NewHorizontalOrientation(g.sprites.afvLeft, g.sprites.afvRight)
	if err != nil {
		return ecs.NoEntity, err
	}
	return g.spawn(archAFV, "",
		component.NewGraphic(g.sprites.afvLeft, x, y),
		o,
		&component.Velocity{X: g.cfg.AFVSpeed},
	)
}

func (g *Game) spawnText(text string, x, y int) (ecs.EntityID, error) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	return g.spawn(archText, GroupHUD,
		component.NewGraphic(component.TextSprite(text, style), x, y),
		&component.Text{Text: text, Style: style},
	)
}
