package system

import (
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// BallCleanupSystem removes balls that tunnelled out of the arena.
type BallCleanupSystem struct {
	Margin float64
}

func NewBallCleanupSystem(margin float64) *BallCleanupSystem {
	return &BallCleanupSystem{Margin: margin}
}

func (s *BallCleanupSystem) Update(w *ecs.World) {
	arenaEntity, ok := ecs.First(w, component.ArenaComponent.Kind())
	if !ok {
		return
	}
	arena, _ := ecs.Get(w, arenaEntity, component.ArenaComponent.Kind())

	ecs.ForEach2(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Ball, t *component.Transform) {
		if !arena.Contains(t.X, t.Y, s.Margin) {
			ecs.MarkDestroyed(w, e)
		}
	})
}
