package system

import (
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

func TestSurvivalSystem(t *testing.T) {
	tests := []struct {
		name         string
		health       int
		wantElapsed  float64
		wantGameOver bool
	}{
		{"alive_keeps_counting", 2, 0.75, false},
		{"dead_stops_clock", 0, 0.25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			state := addEntity(t, w,
				with(w, component.SurvivalClockComponent, component.SurvivalClock{Running: true}),
				with(w, component.BallSpawnTimerComponent, component.BallSpawnTimer{Interval: 1}),
			)
			player := addEntity(t, w,
				with(w, component.PlayerTagComponent, component.PlayerTag{}),
				with(w, component.HealthComponent, component.Health{Current: tt.health, Max: 3, Invulnerable: 0.5}),
			)

			sys := NewSurvivalSystem()
			for i := 0; i < 3; i++ {
				w.SetDelta(0.25)
				sys.Update(w)
			}

			clock, _ := ecs.Get(w, state, component.SurvivalClockComponent.Kind())
			if clock.Elapsed != tt.wantElapsed || clock.GameOver != tt.wantGameOver {
				t.Fatalf("clock = %+v, want elapsed %v game over %v", clock, tt.wantElapsed, tt.wantGameOver)
			}
			timer, _ := ecs.Get(w, state, component.BallSpawnTimerComponent.Kind())
			if timer.Suspended != tt.wantGameOver {
				t.Fatalf("spawn timer suspended = %v, want %v", timer.Suspended, tt.wantGameOver)
			}
			health, _ := ecs.Get(w, player, component.HealthComponent.Kind())
			if health.Invulnerable != 0 {
				t.Fatalf("invulnerability should run out, got %v", health.Invulnerable)
			}
		})
	}
}

func TestBallCleanupSystem(t *testing.T) {
	w := ecs.NewWorld()
	addEntity(t, w, with(w, component.ArenaComponent, component.Arena{Right: 800, Bottom: 600}))
	inside := addEntity(t, w,
		with(w, component.BallComponent, component.Ball{}),
		with(w, component.TransformComponent, component.Transform{X: 400, Y: 630}),
	)
	outside := addEntity(t, w,
		with(w, component.BallComponent, component.Ball{}),
		with(w, component.TransformComponent, component.Transform{X: 400, Y: 700}),
	)

	NewBallCleanupSystem(64).Update(w)

	if !w.IsAlive(inside) {
		t.Fatalf("ball within the margin should survive")
	}
	if w.IsAlive(outside) {
		t.Fatalf("ball past the margin should be removed")
	}
}
