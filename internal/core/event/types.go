package event

import "github.com/l1jgo/aliens/internal/core/ecs"

// Aliens game events. Collisions and movers emit them during the frame; the
// dispatch system handles them at the start of the next one.

type AlienDestroyed struct {
	Alien  ecs.EntityID
	Shot   ecs.EntityID
	X, Y   int
	Reward int
}

type PlayerHit struct {
	By   ecs.EntityID
	X, Y int
}

type BombLanded struct {
	Bomb ecs.EntityID
	X, Y int
}

type ShotFired struct {
	Shot ecs.EntityID
}

type AlienSpawned struct {
	Alien ecs.EntityID
}
