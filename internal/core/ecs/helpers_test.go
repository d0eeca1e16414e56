package ecs_test

import (
	"testing"

	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/stretchr/testify/require"
)

var testSprite = &component.Sprite{Name: "block", Rows: []string{"##", "##"}}

func graphic(x, y int) *component.Graphic { return component.NewGraphic(testSprite, x, y) }

func velocity(x, y int) *component.Velocity { return &component.Velocity{X: x, Y: y} }

func lifetime(n int) *component.Lifetime { return &component.Lifetime{Remaining: n} }

func animation() *component.AnimationCycle {
	return component.NewAnimationCycle([]*component.Sprite{testSprite, testSprite}, 12)
}

func orientation(t *testing.T) *component.HorizontalOrientation {
	o, err := component.NewHorizontalOrientation(testSprite, component.Mirror(testSprite))
	require.NoError(t, err)
	return o
}

// fixture mirrors a small game session: aliens and explosions under archetypes.
type fixture struct {
	reg        *ecs.Registry
	alienType  ecs.ArchetypeID
	blastType  ecs.ArchetypeID
	alien1     ecs.EntityID
	alien2     ecs.EntityID
	explosion1 ecs.EntityID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: ecs.New()}
	var err error
	f.alienType, err = f.reg.AddArchetype(ecs.KindGraphic, ecs.KindAnimationCycle, ecs.KindVelocity)
	require.NoError(t, err)
	f.blastType, err = f.reg.AddArchetype(ecs.KindGraphic, ecs.KindLifetime, ecs.KindHorizontalOrientation)
	require.NoError(t, err)

	f.alien1, err = f.reg.Instantiate(f.alienType, graphic(0, 0), animation(), velocity(1, 1))
	require.NoError(t, err)
	f.alien2, err = f.reg.Instantiate(f.alienType, graphic(0, 0), animation(), velocity(0, 0))
	require.NoError(t, err)
	f.explosion1, err = f.reg.Instantiate(f.blastType, graphic(0, 0), lifetime(12), orientation(t))
	require.NoError(t, err)
	require.NoError(t, f.reg.Verify())
	return f
}

func ids(es []*ecs.Entity) []ecs.EntityID {
	out := make([]ecs.EntityID, len(es))
	for i, e := range es {
		out[i] = e.ID()
	}
	return out
}
