package entity

import (
	"fmt"
	"math"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// ArenaFromSpec converts arena bounds from game.yaml.
func ArenaFromSpec(spec prefabs.ArenaSpec) component.Arena {
	return component.Arena{Left: spec.Left, Top: spec.Top, Right: spec.Right, Bottom: spec.Bottom}
}

// NewGameState builds the entity holding the per-run singletons: arena
// bounds, spawn timer, sound bank, survival clock and animation stats.
func NewGameState(w *ecs.World, spec prefabs.GameSpec, bank component.SoundBank) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaComponent.Kind(), &component.Arena{
		Left:   spec.Arena.Left,
		Top:    spec.Arena.Top,
		Right:  spec.Arena.Right,
		Bottom: spec.Arena.Bottom,
	}); err != nil {
		return 0, fmt.Errorf("game state: add arena: %w", err)
	}
	if err := ecs.Add(w, e, component.BallSpawnTimerComponent.Kind(), &component.BallSpawnTimer{
		Interval: spec.Ball.SpawnInterval,
		Speed:    spec.Ball.Speed,
		Cone:     spec.Ball.ConeDegrees * math.Pi / 180,
		OffsetY:  spec.Ball.OffsetY,
	}); err != nil {
		return 0, fmt.Errorf("game state: add spawn timer: %w", err)
	}
	if err := ecs.Add(w, e, component.SoundBankComponent.Kind(), &bank); err != nil {
		return 0, fmt.Errorf("game state: add sound bank: %w", err)
	}
	if err := ecs.Add(w, e, component.SurvivalClockComponent.Kind(), &component.SurvivalClock{Running: true}); err != nil {
		return 0, fmt.Errorf("game state: add survival clock: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationStatsComponent.Kind(), &component.AnimationStats{Loops: make(map[uint64]int)}); err != nil {
		return 0, fmt.Errorf("game state: add animation stats: %w", err)
	}
	return e, nil
}

// ApplyTuning copies reloadable tuning from spec onto live entities without
// rebuilding the arena.
func ApplyTuning(w *ecs.World, spec prefabs.GameSpec) {
	ecs.ForEach(w, component.BallSpawnTimerComponent.Kind(), func(_ ecs.Entity, t *component.BallSpawnTimer) {
		t.Interval = spec.Ball.SpawnInterval
		t.Speed = spec.Ball.Speed
		t.Cone = spec.Ball.ConeDegrees * math.Pi / 180
		t.OffsetY = spec.Ball.OffsetY
	})
	ecs.ForEach(w, component.PaddleControllerComponent.Kind(), func(_ ecs.Entity, c *component.PaddleController) {
		c.Speed = spec.Paddle.Speed
	})
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		p.MoveSpeed = spec.Player.MoveSpeed
		p.JumpSpeed = spec.Player.JumpSpeed
	})
}
