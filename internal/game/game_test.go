package game

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/audio"
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/config"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/data"
	"github.com/l1jgo/aliens/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTuning struct {
	alien, bomb float64
	reward      int
}

func (f *fixedTuning) AlienSpawnChance(scripting.SpawnContext) float64 { return f.alien }
func (f *fixedTuning) BombSpawnChance(scripting.SpawnContext) float64  { return f.bomb }
func (f *fixedTuning) AlienHitReward(scripting.SpawnContext) int       { return f.reward }

type countingSink struct{ n int }

func (s *countingSink) Play(*beep.Buffer) { s.n++ }

const frame = 50 * time.Millisecond

func newTestGame(t *testing.T, tune *fixedTuning, mutate ...func(*config.GameConfig, *Deps)) *Game {
	t.Helper()
	archetypes, err := data.LoadArchetypeTable("../../data/yaml/archetypes.yaml")
	require.NoError(t, err)
	sprites, err := data.LoadSpriteTable("../../data/yaml/sprites.yaml")
	require.NoError(t, err)

	cfg := config.Default().Game
	cfg.Seed = 7
	d := Deps{
		Registry:   ecs.New(),
		Archetypes: archetypes,
		Sprites:    sprites,
		Tuning:     tune,
		Verify:     true,
	}
	for _, m := range mutate {
		m(&cfg, &d)
	}
	g, err := New(cfg, d)
	require.NoError(t, err)
	return g
}

func groupLen(t *testing.T, g *Game, group string) int {
	t.Helper()
	return len(g.members(group))
}

func TestNewGameLayout(t *testing.T) {
	g := newTestGame(t, &fixedTuning{})
	reg := g.Registry()
	assert.Equal(t, 3, reg.Len(), "player and two HUD lines")
	assert.Equal(t, 2, groupLen(t, g, GroupHUD))
	require.NoError(t, reg.Verify())

	arch, err := reg.ArchetypeOf(g.afv)
	require.NoError(t, err)
	assert.Equal(t, g.types[archAFV], arch)

	hud, err := reg.Entity(g.scoreText)
	require.NoError(t, err)
	assert.Equal(t, "Score: 0", ecs.MustGet[*component.Text](hud).Text)
	assert.Equal(t, 3, g.Lives())
}

func TestNewGameRejectsIncompleteCatalog(t *testing.T) {
	_, err := New(config.Default().Game, Deps{Registry: ecs.New()})
	assert.ErrorIs(t, err, ecs.ErrInvalidConfiguration)
}

func TestAliensSpawnAndBounce(t *testing.T) {
	g := newTestGame(t, &fixedTuning{alien: 1})
	require.NoError(t, g.Tick(frame))
	require.Equal(t, 1, groupLen(t, g, GroupAliens))

	first := g.members(GroupAliens)[0]
	gr := graphicOf(first)
	v := ecs.MustGet[*component.Velocity](first)
	g.tuning = &fixedTuning{}

	gr.Rect.X = g.cfg.Width - 1
	require.NoError(t, g.Tick(frame))
	assert.Equal(t, g.cfg.Width, gr.Rect.X)
	assert.Negative(t, v.X, "turned around")
	assert.Equal(t, gr.Rect.H+1, gr.Rect.Y, "dropped one row")
}

func TestShotDestroysAlien(t *testing.T) {
	tune := &fixedTuning{reward: 25}
	g := newTestGame(t, tune)

	alien, err := g.spawnAlien(0, 0)
	require.NoError(t, err)
	afv := graphicOf(mustEntity(t, g, g.afv)).Rect
	e := mustEntity(t, g, alien)
	graphicOf(e).Rect.X = afv.CenterX() - 1
	graphicOf(e).Rect.Y = afv.Top() - 4
	ecs.MustGet[*component.Velocity](e).X = 0

	g.Input().Fire()
	require.NoError(t, g.Tick(frame)) // fire; shot moves up one row
	require.NoError(t, g.Tick(frame)) // shot reaches the alien
	assert.False(t, g.Registry().Contains(alien))
	assert.Zero(t, groupLen(t, g, GroupShots))
	assert.Zero(t, g.Score(), "reward lands next frame")

	require.NoError(t, g.Tick(frame))
	assert.Equal(t, 25, g.Score())
	assert.Equal(t, 1, groupLen(t, g, GroupExplosions))
	hud := mustEntity(t, g, g.scoreText)
	assert.Equal(t, "Score: 25", ecs.MustGet[*component.Text](hud).Text)
}

func TestShotsAreLimited(t *testing.T) {
	g := newTestGame(t, &fixedTuning{})
	for i := 0; i < 5; i++ {
		g.Input().Fire()
		require.NoError(t, g.Tick(frame))
	}
	assert.Equal(t, g.cfg.MaxShots, groupLen(t, g, GroupShots))
}

func TestBombHitsPlayerUntilGameOver(t *testing.T) {
	g := newTestGame(t, &fixedTuning{}, func(c *config.GameConfig, _ *Deps) { c.Lives = 2 })
	afv := graphicOf(mustEntity(t, g, g.afv)).Rect

	for round := 0; round < 2; round++ {
		_, err := g.spawnBomb(afv.CenterX(), afv.Top()-1)
		require.NoError(t, err)
		require.NoError(t, g.Tick(frame)) // bomb falls onto the player
		require.NoError(t, g.Tick(frame)) // hit handled
	}
	assert.Zero(t, g.Lives())
	assert.True(t, g.Over())
	frames := g.Frame()
	require.NoError(t, g.Tick(frame))
	assert.Equal(t, frames, g.Frame(), "no frames after game over")
	assert.Equal(t, "Lives: 0", ecs.MustGet[*component.Text](mustEntity(t, g, g.livesText)).Text)
}

func TestBombLandsAndExplosionExpires(t *testing.T) {
	g := newTestGame(t, &fixedTuning{}, func(c *config.GameConfig, _ *Deps) { c.ExplosionTicks = 3 })
	_, err := g.spawnBomb(2, g.cfg.Height-4)
	require.NoError(t, err)

	require.NoError(t, g.Tick(frame))
	assert.Zero(t, groupLen(t, g, GroupBombs))
	require.NoError(t, g.Tick(frame))
	assert.Equal(t, 1, groupLen(t, g, GroupExplosions))
	require.NoError(t, g.Tick(frame))
	require.NoError(t, g.Tick(frame))
	assert.Zero(t, groupLen(t, g, GroupExplosions))
	require.NoError(t, g.Registry().Verify())
}

var errQueueClosed = errors.New("despawn queue closed")

type refusingDespawner struct{ asked []ecs.EntityID }

func (d *refusingDespawner) Despawn(id ecs.EntityID) error {
	d.asked = append(d.asked, id)
	return errQueueClosed
}

func TestMoversReportDespawnFailures(t *testing.T) {
	g := newTestGame(t, &fixedTuning{})
	shot, err := g.spawnShot(5, 0)
	require.NoError(t, err)
	bomb, err := g.spawnBomb(2, g.cfg.Height-4)
	require.NoError(t, err)
	g.shots, g.bombs = g.members(GroupShots), g.members(GroupBombs)

	d := &refusingDespawner{}
	assert.ErrorIs(t, g.moveShots(d), errQueueClosed)
	assert.ErrorIs(t, g.moveBombs(d), errQueueClosed)
	assert.Equal(t, []ecs.EntityID{shot, bomb}, d.asked)

	d.asked = nil
	assert.NoError(t, g.moveAliens(d), "nothing left the screen")
	assert.Empty(t, d.asked)
}

func TestSteeringAndQuit(t *testing.T) {
	g := newTestGame(t, &fixedTuning{})
	afv := graphicOf(mustEntity(t, g, g.afv))
	x := afv.Rect.X

	g.Input().HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	require.NoError(t, g.Tick(frame))
	assert.Equal(t, x+g.cfg.AFVSpeed, afv.Rect.X)
	assert.Same(t, g.sprites.afvRight, afv.Sprite)

	require.NoError(t, g.Tick(frame))
	assert.Equal(t, x+g.cfg.AFVSpeed, afv.Rect.X, "presses do not repeat on their own")

	assert.True(t, g.Input().HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, g.Input().HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
	require.NoError(t, g.Tick(frame))
	assert.True(t, g.Over())
}

func TestRenderAndAudioWiring(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)
	sink := &countingSink{}

	g := newTestGame(t, &fixedTuning{}, func(_ *config.GameConfig, d *Deps) {
		d.Screen = screen
		d.Sink = sink
		d.Sounds = audio.NewBank(8000, 0)
	})
	g.Input().Fire()
	require.NoError(t, g.Tick(frame))

	mainc, _, _, _ := screen.GetContent(1, 28)
	assert.Equal(t, 'S', mainc)
	assert.Equal(t, 1, sink.n, "shot sound")
}

func mustEntity(t *testing.T, g *Game, id ecs.EntityID) *ecs.Entity {
	t.Helper()
	e, err := g.Registry().Entity(id)
	require.NoError(t, err)
	return e
}
