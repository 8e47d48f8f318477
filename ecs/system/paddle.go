package system

import (
	"errors"
	"math"

	"github.com/radmars/ld54/common"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// ErrInvalidArrivalTime is the panic value when a ball's arrival time at the
// top wall cannot be ordered.
var ErrInvalidArrivalTime = errors.New("paddle: arrival time is NaN")

// BallSample is what the paddle controller knows about one ball.
type BallSample struct {
	Entity ecs.Entity
	X, Y   float64
	VY     float64
}

// ArrivalTime estimates when a ball reaches topY. A ball moving away gives a
// negative time; it is folded forward by halfHeight so balls heading down
// still rank behind balls heading up.
func ArrivalTime(ball BallSample, topY, halfHeight float64) float64 {
	t := (topY - ball.Y) / ball.VY
	if t < 0 {
		t = -t + halfHeight
	}
	return t
}

// SelectPaddleTarget picks the ball the paddle should chase: among balls not
// below restingY, the one with the smallest arrival time. It panics with
// ErrInvalidArrivalTime when a time is NaN.
func SelectPaddleTarget(balls []BallSample, topY, restingY, halfHeight float64) (BallSample, bool) {
	var (
		best     BallSample
		bestTime float64
		found    bool
	)
	for _, ball := range balls {
		if ball.Y > restingY {
			continue
		}
		t := ArrivalTime(ball, topY, halfHeight)
		if math.IsNaN(t) {
			panic(ErrInvalidArrivalTime)
		}
		if !found || t < bestTime {
			best = ball
			bestTime = t
			found = true
		}
	}
	return best, found
}

// StepPaddleX moves x toward targetX by at most speed*dt, then clamps it to
// [minX, maxX].
func StepPaddleX(x, targetX, speed, dt, minX, maxX float64) float64 {
	step := speed * dt
	switch {
	case targetX > x:
		x = math.Min(x+step, targetX)
	case targetX < x:
		x = math.Max(x-step, targetX)
	}
	return common.Clamp(x, minX, maxX)
}

// PaddleSystem drives the AI paddle toward the ball that will reach the top
// wall soonest. It writes the paddle's Velocity so the kinematic body lands on
// the new position after the physics step.
type PaddleSystem struct{}

func NewPaddleSystem() *PaddleSystem {
	return &PaddleSystem{}
}

func (s *PaddleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	paddleEntity, ok := ecs.Single(w, component.PaddleComponent.Kind())
	if !ok {
		return
	}
	paddle, _ := ecs.Get(w, paddleEntity, component.PaddleComponent.Kind())
	ctrl, ok := ecs.Get(w, paddleEntity, component.PaddleControllerComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, paddleEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, paddleEntity, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	arenaEntity, ok := ecs.First(w, component.ArenaComponent.Kind())
	if !ok {
		return
	}
	arena, _ := ecs.Get(w, arenaEntity, component.ArenaComponent.Kind())

	vel.X, vel.Y = 0, 0

	var balls []BallSample
	ecs.ForEach3(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, _ *component.Ball, t *component.Transform, v *component.Velocity) {
			balls = append(balls, BallSample{Entity: e, X: t.X, Y: t.Y, VY: v.Y})
		})

	target, ok := SelectPaddleTarget(balls, arena.Top, ctrl.RestingY, arena.Height()/2)
	if !ok {
		return
	}

	dt := w.Delta()
	if dt <= 0 {
		return
	}
	half := ctrl.Width / 2
	nextX := StepPaddleX(transform.X, target.X, ctrl.Speed, dt, arena.Left+half, arena.Right-half)
	vel.X = (nextX - transform.X) / dt
	paddle.FacingLeft = transform.X > target.X
	if sprite, ok := ecs.Get(w, paddleEntity, component.SpriteComponent.Kind()); ok {
		sprite.FacingLeft = paddle.FacingLeft
	}
}
