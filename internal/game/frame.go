package game

import (
	"errors"
	"slices"
	"time"

	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/core/event"
	"github.com/l1jgo/aliens/internal/system"
	"go.uber.org/zap"
)

func (g *Game) members(group string) []*ecs.Entity {
	seq, err := g.reg.EntitiesInGroup(group)
	if err != nil {
		return nil
	}
	return slices.Collect(seq)
}

func graphicOf(e *ecs.Entity) *component.Graphic {
	gr, _ := ecs.Get[*component.Graphic](e)
	return gr
}

// inputPhase rolls the spawn chances and applies the player's input.
// Phase 0 (Input).
func (g *Game) inputPhase(_ time.Duration) error {
	dir, fire, quit := g.input.take()
	if quit {
		g.over = true
		g.log.Info("player quit", zap.Int("score", g.score))
		return nil
	}
	ctx := g.context()

	if g.rng.Float64() < g.tuning.AlienSpawnChance(ctx) {
		if id, err := g.spawnAlien(0, 0); err == nil {
			event.Emit(g.bus, event.AlienSpawned{Alien: id})
		}
	}

	if aliens := g.members(GroupAliens); len(aliens) > 0 && g.rng.Float64() < g.tuning.BombSpawnChance(ctx) {
		if last := graphicOf(aliens[len(aliens)-1]); last != nil &&
			last.Rect.Left() > 0 && last.Rect.Right() < g.cfg.Width {
			g.spawnBomb(last.Rect.CenterX(), last.Rect.Bottom()+1)
		}
	}

	afv, err := g.reg.Entity(g.afv)
	if err != nil {
		return err
	}
	if fire && len(g.members(GroupShots)) < g.cfg.MaxShots {
		r := graphicOf(afv).Rect
		if id, err := g.spawnShot(r.CenterX(), r.Top()); err == nil {
			event.Emit(g.bus, event.ShotFired{Shot: id})
		}
	}
	if dir != component.None {
		return system.MoveOriented(afv, dir, g.cfg.Width)
	}
	return nil
}

// dispatchPhase handles last frame's events and snapshots the per-category
// lists the concurrent movers work on. Phase 1 (PreUpdate).
func (g *Game) dispatchPhase(_ time.Duration) error {
	g.bus.SwapBuffers()
	g.bus.DispatchAll()
	g.aliens = g.members(GroupAliens)
	g.bombs = g.members(GroupBombs)
	g.shots = g.members(GroupShots)
	g.explosions = g.members(GroupExplosions)
	return nil
}

// moveAliens sweeps aliens across the screen. An alien that has fully left
// one side turns around one row lower; one that sinks below the screen is
// removed.
func (g *Game) moveAliens(despawn ecs.Despawner) error {
	var errs []error
	right := g.cfg.Width
	for _, e := range g.aliens {
		gr, v := graphicOf(e), ecs.MustGet[*component.Velocity](e)
		gr.Rect.Move(v.X, v.Y)
		if gr.Rect.Left() > right {
			gr.Rect.X = right
		} else if gr.Rect.Right() < 0 {
			gr.Rect.X = -gr.Rect.W
		}
		if gr.Rect.Left() == right || gr.Rect.Right() == 0 {
			v.X = -v.X
			gr.Rect.Y = gr.Rect.Bottom() + 1
		}
		if gr.Rect.Top() >= g.cfg.Height {
			if err := despawn.Despawn(e.ID()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (g *Game) moveShots(despawn ecs.Despawner) error {
	var errs []error
	for _, e := range g.shots {
		system.Move([]*ecs.Entity{e})
		if graphicOf(e).Rect.Bottom() < 0 {
			if err := despawn.Despawn(e.ID()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// moveBombs drops bombs; a bomb reaching the ground explodes.
func (g *Game) moveBombs(despawn ecs.Despawner) error {
	var errs []error
	ground := g.cfg.Height - 3
	for _, e := range g.bombs {
		system.Move([]*ecs.Entity{e})
		r := graphicOf(e).Rect
		if r.Bottom() > ground {
			event.Emit(g.bus, event.BombLanded{Bomb: e.ID(), X: r.CenterX(), Y: ground})
			if err := despawn.Despawn(e.ID()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (g *Game) live(list []*ecs.Entity) []*ecs.Entity {
	return slices.DeleteFunc(slices.Clone(list), func(e *ecs.Entity) bool { return g.reg.Marked(e.ID()) })
}

// collisionPhase resolves shots against aliens and the player against
// bombs and aliens. Entities already queued for despawn take no part.
// Phase 3 (PostUpdate).
func (g *Game) collisionPhase(_ time.Duration) error {
	aliens := g.live(g.aliens)
	err := system.CollideListsFunc(g.live(g.shots), aliens, func(shot *ecs.Entity, others []*ecs.Entity, hits []int) error {
		for _, i := range hits {
			alien := others[i]
			if g.reg.Marked(alien.ID()) {
				continue
			}
			r := graphicOf(alien).Rect
			event.Emit(g.bus, event.AlienDestroyed{Alien: alien.ID(), Shot: shot.ID(), X: r.CenterX(), Y: r.CenterY()})
			g.reg.MarkForDespawn(alien.ID())
			g.reg.MarkForDespawn(shot.ID())
			return nil
		}
		return nil
	})
	if err != nil {
		return err
	}

	afv, err := g.reg.Entity(g.afv)
	if err != nil {
		return err
	}
	threats := g.live(append(slices.Clone(g.bombs), aliens...))
	return system.CollideListFunc(afv, threats, func(others []*ecs.Entity, hit int) error {
		r := graphicOf(afv).Rect
		event.Emit(g.bus, event.PlayerHit{By: others[hit].ID(), X: r.CenterX(), Y: r.CenterY()})
		g.reg.MarkForDespawn(others[hit].ID())
		return nil
	})
}

func (g *Game) rewrite(id ecs.EntityID, text string) {
	e, err := g.reg.Entity(id)
	if err == nil {
		err = system.RewriteText(e, text)
	}
	if err != nil {
		g.log.Warn("rewrite text failed", zap.Uint64("entity", uint64(id)), zap.Error(err))
	}
}

func (g *Game) subscribe() {
	event.Subscribe(g.bus, func(e event.AlienDestroyed) {
		g.score += g.tuning.AlienHitReward(g.context())
		g.rewrite(g.scoreText, g.scoreLine())
		g.spawnExplosion(e.X, e.Y)
	})
	event.Subscribe(g.bus, func(e event.PlayerHit) {
		g.lives = max(g.lives-g.cfg.LifePenalty, 0)
		g.rewrite(g.livesText, g.livesLine())
		g.spawnExplosion(e.X, e.Y)
		if g.lives == 0 {
			g.over = true
			g.log.Info("game over", zap.Int("score", g.score), zap.Int("frame", g.frame))
		}
	})
	event.Subscribe(g.bus, func(e event.BombLanded) {
		g.spawnExplosion(e.X, e.Y)
	})
	event.Subscribe(g.bus, func(e event.AlienSpawned) {
		g.log.Debug("alien spawned", zap.Uint64("entity", uint64(e.Alien)))
	})
	event.Subscribe(g.bus, func(e event.ShotFired) {
		g.log.Debug("shot fired", zap.Uint64("entity", uint64(e.Shot)))
	})
}
