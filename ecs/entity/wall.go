package entity

import (
	"fmt"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// NewWall builds an invisible static box centred on (x, y).
func NewWall(w *ecs.World, x, y, width, height float64, lethal bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{Lethal: lethal}); err != nil {
		return 0, fmt.Errorf("wall: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyStatic,
		Width:      width,
		Height:     height,
		Elasticity: 1,
	}); err != nil {
		return 0, fmt.Errorf("wall: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerWall}); err != nil {
		return 0, fmt.Errorf("wall: add collision layer: %w", err)
	}
	return e, nil
}

// NewArenaWalls surrounds the arena with four walls of the given thickness.
// Only the bottom wall is lethal.
func NewArenaWalls(w *ecs.World, arena component.Arena, thickness float64) ([]ecs.Entity, error) {
	if thickness <= 0 {
		thickness = 40
	}
	cx := (arena.Left + arena.Right) / 2
	cy := (arena.Top + arena.Bottom) / 2
	half := thickness / 2

	walls := []struct {
		name          string
		x, y          float64
		width, height float64
		lethal        bool
	}{
		{"top", cx, arena.Top - half, arena.Width() + 2*thickness, thickness, false},
		{"bottom", cx, arena.Bottom + half, arena.Width() + 2*thickness, thickness, true},
		{"left", arena.Left - half, cy, thickness, arena.Height(), false},
		{"right", arena.Right + half, cy, thickness, arena.Height(), false},
	}

	out := make([]ecs.Entity, 0, len(walls))
	for _, spec := range walls {
		e, err := NewWall(w, spec.x, spec.y, spec.width, spec.height, spec.lethal)
		if err != nil {
			return nil, fmt.Errorf("%s %w", spec.name, err)
		}
		out = append(out, e)
	}
	return out, nil
}
