package ecs_test

import (
	"slices"
	"testing"

	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryObservesLaterMutations(t *testing.T) {
	f := newFixture(t)
	aliens, err := f.reg.EntitiesOfArchetype(f.alienType)
	require.NoError(t, err)
	withVelocity := f.reg.EntitiesWithKind(ecs.KindVelocity)

	id, err := f.reg.Instantiate(f.alienType, graphic(0, 0), animation(), velocity(0, 0))
	require.NoError(t, err)
	require.NoError(t, f.reg.RemoveEntity(f.alienType, f.alien1))

	assert.Equal(t, []ecs.EntityID{f.alien2, id}, ids(slices.Collect(aliens)))
	assert.Equal(t, []ecs.EntityID{f.alien2, id}, ids(slices.Collect(withVelocity)))
	assert.Equal(t, ids(slices.Collect(aliens)), ids(slices.Collect(aliens)), "sequences are restartable")
}

func TestQueryEndsWhenArchetypeRemoved(t *testing.T) {
	f := newFixture(t)
	aliens, err := f.reg.EntitiesOfArchetype(f.alienType)
	require.NoError(t, err)
	require.NoError(t, f.reg.RemoveArchetype(f.alienType))
	assert.Empty(t, slices.Collect(aliens))
}

func TestDespawnInsideLoopDoesNotDeadlock(t *testing.T) {
	f := newFixture(t)
	snapshot := slices.Collect(f.reg.EntitiesWithKind(ecs.KindGraphic))
	for _, e := range snapshot {
		require.NoError(t, f.reg.Despawn(e.ID()))
	}
	assert.Zero(t, f.reg.Len())

	g := newFixture(t)
	n := 0
	for e := range g.reg.EntitiesWithKind(ecs.KindVelocity) {
		require.NoError(t, g.reg.Despawn(e.ID()))
		n++
	}
	assert.Equal(t, 1, n, "removing the current element shifts the live bucket")
}

func TestComponentsOfKind(t *testing.T) {
	f := newFixture(t)
	var owners []ecs.EntityID
	for c := range f.reg.ComponentsOfKind(ecs.KindGraphic) {
		_, ok := c.(*component.Graphic)
		assert.True(t, ok)
		owners = append(owners, c.Owner())
	}
	assert.Equal(t, []ecs.EntityID{f.alien1, f.alien2, f.explosion1}, owners)
	assert.Empty(t, slices.Collect(f.reg.ComponentsOfKind(ecs.KindAudio)))
	assert.Empty(t, slices.Collect(f.reg.ComponentsOfKind(ecs.Kind(99))))
}

func TestEachJoins(t *testing.T) {
	f := newFixture(t)
	free, err := f.reg.Register(graphic(9, 9), velocity(2, 2))
	require.NoError(t, err)

	var pairs []ecs.EntityID
	ecs.Each2(f.reg, func(e *ecs.Entity, g *component.Graphic, v *component.Velocity) {
		assert.Equal(t, e.ID(), g.Owner())
		assert.Equal(t, e.ID(), v.Owner())
		pairs = append(pairs, e.ID())
	})
	assert.Equal(t, []ecs.EntityID{f.alien1, f.alien2, free}, pairs)

	var triples []ecs.EntityID
	ecs.Each3(f.reg, func(e *ecs.Entity, g *component.Graphic, a *component.AnimationCycle, v *component.Velocity) {
		triples = append(triples, e.ID())
	})
	assert.Equal(t, []ecs.EntityID{f.alien1, f.alien2}, triples)

	var lifetimes []ecs.EntityID
	ecs.Each2(f.reg, func(e *ecs.Entity, l *component.Lifetime, g *component.Graphic) {
		lifetimes = append(lifetimes, e.ID())
	})
	assert.Equal(t, []ecs.EntityID{f.explosion1}, lifetimes)
}

func TestGetTyped(t *testing.T) {
	f := newFixture(t)
	e, err := f.reg.Entity(f.explosion1)
	require.NoError(t, err)

	l, ok := ecs.Get[*component.Lifetime](e)
	require.True(t, ok)
	assert.Equal(t, 12, l.Remaining)

	_, ok = ecs.Get[*component.Velocity](e)
	assert.False(t, ok)
	assert.Panics(t, func() { ecs.MustGet[*component.Velocity](e) })
}
