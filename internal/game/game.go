package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/audio"
	"github.com/l1jgo/aliens/internal/config"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/core/event"
	coresys "github.com/l1jgo/aliens/internal/core/system"
	"github.com/l1jgo/aliens/internal/data"
	"github.com/l1jgo/aliens/internal/scripting"
	"github.com/l1jgo/aliens/internal/system"
	"go.uber.org/zap"
)

// Tuning supplies the per-frame chances and rewards. *scripting.Engine
// implements it with Lua scripts.
type Tuning interface {
	AlienSpawnChance(ctx scripting.SpawnContext) float64
	BombSpawnChance(ctx scripting.SpawnContext) float64
	AlienHitReward(ctx scripting.SpawnContext) int
}

// Deps are the collaborators a game session is built from. Screen and Sink
// are optional; without them nothing is drawn or played.
type Deps struct {
	Registry   *ecs.Registry
	Archetypes *data.ArchetypeTable
	Sprites    *data.SpriteTable
	Sounds     *audio.Bank
	Tuning     Tuning
	Screen     tcell.Screen
	Sink       system.Sink
	Verify     bool
	Log        *zap.Logger
}

// Game is one aliens session: the registry contents, the score and lives
// counters and the systems that advance a frame.
type Game struct {
	cfg    config.GameConfig
	reg    *ecs.Registry
	bus    *event.Bus
	runner *coresys.Runner
	tuning Tuning
	log    *zap.Logger
	rng    *rand.Rand

	types          map[string]ecs.ArchetypeID
	sprites        sprites
	shotSound      *beep.Buffer
	explosionSound *beep.Buffer

	afv, scoreText, livesText ecs.EntityID
	score, lives              int
	frame                     int
	over                      bool

	input Input

	// lists snapshotted at the start of each frame's update
	aliens, bombs, shots, explosions []*ecs.Entity
}

// New declares the archetypes and groups in d.Registry, spawns the player
// and the HUD, and wires the frame systems.
func New(cfg config.GameConfig, d Deps) (*Game, error) {
	if d.Registry == nil || d.Archetypes == nil || d.Sprites == nil || d.Tuning == nil {
		return nil, fmt.Errorf("%w: game needs a registry, archetypes, sprites and tuning", ecs.ErrInvalidConfiguration)
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		cfg:    cfg,
		reg:    d.Registry,
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
		tuning: d.Tuning,
		log:    log,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		score:  0,
		lives:  cfg.Lives,
	}
	if d.Sounds != nil {
		g.shotSound, g.explosionSound = d.Sounds.Shot, d.Sounds.Explosion
	}

	for _, name := range requiredArchetypes {
		if d.Archetypes.Get(name) == nil {
			return nil, fmt.Errorf("%w: archetype %q missing from catalog", ecs.ErrInvalidConfiguration, name)
		}
	}
	var err error
	if g.types, err = d.Archetypes.Declare(g.reg); err != nil {
		return nil, err
	}
	if g.sprites, err = resolveSprites(d.Sprites); err != nil {
		return nil, err
	}
	for _, name := range groups {
		if err := g.reg.AddGroup(name); err != nil {
			return nil, err
		}
	}

	afvY := cfg.Height - 3 - g.sprites.afvLeft.Height()
	if g.afv, err = g.spawnAFV(cfg.Width/2, afvY); err != nil {
		return nil, err
	}
	if g.scoreText, err = g.spawnText(g.scoreLine(), 1, cfg.Height-2); err != nil {
		return nil, err
	}
	if g.livesText, err = g.spawnText(g.livesLine(), 1, cfg.Height-1); err != nil {
		return nil, err
	}

	g.subscribe()
	g.wire(d)
	g.log.Info("game ready",
		zap.Stringer("registry", g.reg.InstanceID()),
		zap.Int("archetypes", len(g.types)),
		zap.Uint64("seed", seed))
	return g, nil
}

func (g *Game) wire(d Deps) {
	r := g.runner
	r.Register(coresys.Func(coresys.PhaseInput, g.inputPhase))
	r.Register(coresys.Func(coresys.PhasePreUpdate, g.dispatchPhase))

	r.SetParallel(coresys.PhaseUpdate, true)
	despawn := g.reg.Deferred()
	r.Register(coresys.Func(coresys.PhaseUpdate, func(time.Duration) error { return g.moveAliens(despawn) }))
	r.Register(coresys.Func(coresys.PhaseUpdate, func(time.Duration) error { return g.moveShots(despawn) }))
	r.Register(coresys.Func(coresys.PhaseUpdate, func(time.Duration) error { return g.moveBombs(despawn) }))
	r.Register(coresys.Func(coresys.PhaseUpdate, func(time.Duration) error {
		system.RotateAnimation(g.aliens)
		return nil
	}))
	r.Register(coresys.Func(coresys.PhaseUpdate, func(time.Duration) error {
		return system.DecayLifetimes(g.explosions, despawn)
	}))

	r.Register(coresys.Func(coresys.PhasePostUpdate, g.collisionPhase))
	if d.Screen != nil {
		r.Register(system.NewRenderSystem(d.Screen, g.reg, tcell.StyleDefault))
	}
	if d.Sink != nil {
		r.Register(system.NewAudioSystem(g.reg, d.Sink))
	}
	r.Register(system.NewCleanupSystem(g.reg, d.Verify, g.log))
}

// Tick advances the session by one frame.
func (g *Game) Tick(dt time.Duration) error {
	if g.over {
		return nil
	}
	g.frame++
	return g.runner.Tick(dt)
}

// Over reports whether the player quit or ran out of lives.
func (g *Game) Over() bool { return g.over }

func (g *Game) Score() int { return g.score }

func (g *Game) Lives() int { return g.lives }

func (g *Game) Frame() int { return g.frame }

// Input is where the terminal loop reports key presses.
func (g *Game) Input() *Input { return &g.input }

func (g *Game) Registry() *ecs.Registry { return g.reg }

func (g *Game) scoreLine() string { return fmt.Sprintf("Score: %d", g.score) }

func (g *Game) livesLine() string { return fmt.Sprintf("Lives: %d", g.lives) }

func (g *Game) context() scripting.SpawnContext {
	return scripting.SpawnContext{
		Frame:  g.frame,
		Score:  g.score,
		Lives:  g.lives,
		Aliens: len(g.aliens),
		Bombs:  len(g.bombs),
	}
}
