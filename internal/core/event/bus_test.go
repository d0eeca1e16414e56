package event_test

import (
	"testing"

	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/core/event"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestEventsArriveNextFrame(t *testing.T) {
	b := event.NewBus()
	var got []int
	event.Subscribe(b, func(e event.AlienDestroyed) { got = append(got, e.Reward) })

	event.Emit(b, event.AlienDestroyed{Reward: 10})
	b.DispatchAll()
	assert.Empty(t, got, "emitted this frame")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{10}, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{10}, got, "delivered once")
}

func TestDispatchOrderAndTyping(t *testing.T) {
	b := event.NewBus()
	var log []string
	event.Subscribe(b, func(event.PlayerHit) { log = append(log, "hit") })
	event.Subscribe(b, func(event.BombLanded) { log = append(log, "landed") })

	event.Emit(b, event.BombLanded{})
	event.Emit(b, event.PlayerHit{})
	event.Emit(b, event.BombLanded{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"landed", "landed", "hit"}, log)
}

func TestConcurrentEmit(t *testing.T) {
	b := event.NewBus()
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				event.Emit(b, event.ShotFired{})
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	assert.Equal(t, 800, b.Pending())

	n := 0
	event.Subscribe(b, func(event.ShotFired) { n++ })
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 800, n)
}

func TestHandlerMayEmit(t *testing.T) {
	b := event.NewBus()
	event.Subscribe(b, func(event.PlayerHit) { event.Emit(b, event.AlienSpawned{Alien: 5}) })
	var spawned []ecs.EntityID
	event.Subscribe(b, func(e event.AlienSpawned) { spawned = append(spawned, e.Alien) })

	event.Emit(b, event.PlayerHit{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Empty(t, spawned)
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []ecs.EntityID{5}, spawned)
}
