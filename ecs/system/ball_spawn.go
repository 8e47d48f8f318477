package system

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// BallSpawner creates a ball at (x, y) moving at (vx, vy).
type BallSpawner func(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error)

// BallSpawnSystem launches a ball from the paddle every BallSpawnTimer.Interval
// seconds. Time keeps accumulating while no paddle exists.
type BallSpawnSystem struct {
	spawn BallSpawner
	rng   *rand.Rand
}

func NewBallSpawnSystem(spawn BallSpawner, rng *rand.Rand) *BallSpawnSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &BallSpawnSystem{spawn: spawn, rng: rng}
}

// LaunchVelocity returns a velocity of magnitude speed pointing straight down
// rotated by angle radians.
func LaunchVelocity(speed, angle float64) (float64, float64) {
	return speed * math.Sin(angle), speed * math.Cos(angle)
}

func (s *BallSpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	timerEntity, ok := ecs.First(w, component.BallSpawnTimerComponent.Kind())
	if !ok {
		return
	}
	timer, _ := ecs.Get(w, timerEntity, component.BallSpawnTimerComponent.Kind())
	if timer.Suspended {
		return
	}

	timer.Accumulated += w.Delta()
	if timer.Interval <= 0 || timer.Accumulated < timer.Interval {
		return
	}

	paddle, ok := ecs.Single(w, component.PaddleComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, paddle, component.TransformComponent.Kind())
	if !ok {
		return
	}

	timer.Accumulated = 0
	if s.spawn == nil {
		return
	}

	angle := (s.rng.Float64() - 0.5) * timer.Cone
	vx, vy := LaunchVelocity(timer.Speed, angle)
	if _, err := s.spawn(w, transform.X, transform.Y+timer.OffsetY, vx, vy); err != nil {
		log.Printf("ball spawn: %v", err)
	}
}
