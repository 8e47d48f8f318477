package system

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

type spawnCall struct {
	x, y, vx, vy float64
}

func recordingSpawner(calls *[]spawnCall) BallSpawner {
	return func(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error) {
		*calls = append(*calls, spawnCall{x, y, vx, vy})
		return ecs.CreateEntity(w), nil
	}
}

func newSpawnWorld(t *testing.T, withPaddle bool) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	timer := addEntity(t, w, with(w, component.BallSpawnTimerComponent, component.BallSpawnTimer{
		Interval: 10,
		Speed:    300,
		Cone:     math.Pi / 3,
		OffsetY:  30,
	}))
	if withPaddle {
		addEntity(t, w,
			with(w, component.PaddleComponent, component.Paddle{}),
			with(w, component.TransformComponent, component.Transform{X: 400, Y: 80}),
		)
	}
	return w, timer
}

func TestBallSpawnSystemInterval(t *testing.T) {
	w, _ := newSpawnWorld(t, true)
	var calls []spawnCall
	sys := NewBallSpawnSystem(recordingSpawner(&calls), rand.New(rand.NewPCG(1, 1)))

	for i := 0; i < 19; i++ {
		w.SetDelta(0.5)
		sys.Update(w)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no ball before the interval, got %d", len(calls))
	}

	w.SetDelta(0.5)
	sys.Update(w)
	if len(calls) != 1 {
		t.Fatalf("expected exactly one ball after 10s, got %d", len(calls))
	}

	c := calls[0]
	if c.x != 400 || c.y != 110 {
		t.Fatalf("expected spawn at (400, 110), got (%v, %v)", c.x, c.y)
	}
	if speed := math.Hypot(c.vx, c.vy); math.Abs(speed-300) > 1e-9 {
		t.Fatalf("expected launch speed 300, got %v", speed)
	}
	if c.vy <= 0 {
		t.Fatalf("ball should launch downward, got vy=%v", c.vy)
	}
	if angle := math.Atan2(c.vx, c.vy); math.Abs(angle) > math.Pi/6 {
		t.Fatalf("launch angle %v outside cone", angle)
	}
}

func TestBallSpawnSystemWaitsForPaddle(t *testing.T) {
	w, timer := newSpawnWorld(t, false)
	var calls []spawnCall
	sys := NewBallSpawnSystem(recordingSpawner(&calls), nil)

	for i := 0; i < 24; i++ {
		w.SetDelta(0.5)
		sys.Update(w)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no ball without a paddle, got %d", len(calls))
	}
	tm, _ := ecs.Get(w, timer, component.BallSpawnTimerComponent.Kind())
	if tm.Accumulated != 12 {
		t.Fatalf("expected accumulation to continue, got %v", tm.Accumulated)
	}

	addEntity(t, w,
		with(w, component.PaddleComponent, component.Paddle{}),
		with(w, component.TransformComponent, component.Transform{X: 100, Y: 80}),
	)
	w.SetDelta(0.5)
	sys.Update(w)
	if len(calls) != 1 || tm.Accumulated != 0 {
		t.Fatalf("expected a ball once the paddle exists, got %d (acc %v)", len(calls), tm.Accumulated)
	}
}

func TestBallSpawnSystemSuspended(t *testing.T) {
	w, timer := newSpawnWorld(t, true)
	tm, _ := ecs.Get(w, timer, component.BallSpawnTimerComponent.Kind())
	tm.Suspended = true

	var calls []spawnCall
	sys := NewBallSpawnSystem(recordingSpawner(&calls), nil)
	w.SetDelta(20)
	sys.Update(w)
	if len(calls) != 0 || tm.Accumulated != 0 {
		t.Fatalf("suspended timer should do nothing")
	}
}

func TestBallSpawnSystemSpawnError(t *testing.T) {
	w, timer := newSpawnWorld(t, true)
	sys := NewBallSpawnSystem(func(*ecs.World, float64, float64, float64, float64) (ecs.Entity, error) {
		return 0, errors.New("boom")
	}, nil)
	w.SetDelta(10)
	sys.Update(w)

	tm, _ := ecs.Get(w, timer, component.BallSpawnTimerComponent.Kind())
	if tm.Accumulated != 0 {
		t.Fatalf("timer should reset even when spawning fails, got %v", tm.Accumulated)
	}
}

func TestLaunchVelocity(t *testing.T) {
	vx, vy := LaunchVelocity(300, 0)
	if vx != 0 || vy != 300 {
		t.Fatalf("expected straight down, got (%v, %v)", vx, vy)
	}
}
