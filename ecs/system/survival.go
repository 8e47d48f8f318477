package system

import (
	"log"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// SurvivalSystem advances the survival clock, counts down invulnerability
// and ends the run when the player's health runs out.
type SurvivalSystem struct{}

func NewSurvivalSystem() *SurvivalSystem {
	return &SurvivalSystem{}
}

func (s *SurvivalSystem) Update(w *ecs.World) {
	dt := w.Delta()

	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		if h.Invulnerable > 0 {
			h.Invulnerable -= dt
			if h.Invulnerable < 0 {
				h.Invulnerable = 0
			}
		}
	})

	clockEntity, ok := ecs.First(w, component.SurvivalClockComponent.Kind())
	if !ok {
		return
	}
	clock, _ := ecs.Get(w, clockEntity, component.SurvivalClockComponent.Kind())
	if !clock.Running || clock.GameOver {
		return
	}
	clock.Elapsed += dt

	player, ok := ecs.Single(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || health.Current > 0 {
		return
	}

	clock.Running = false
	clock.GameOver = true
	log.Printf("game over after %.1fs", clock.Elapsed)

	if timerEntity, ok := ecs.First(w, component.BallSpawnTimerComponent.Kind()); ok {
		if timer, ok := ecs.Get(w, timerEntity, component.BallSpawnTimerComponent.Kind()); ok {
			timer.Suspended = true
		}
	}
}
