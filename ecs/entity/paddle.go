package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// NewPaddle builds the AI paddle, a kinematic capsule resting spec.Gap below
// the top of the arena.
func NewPaddle(w *ecs.World, spec prefabs.PaddleSpec, arena component.Arena, img *ebiten.Image) (ecs.Entity, error) {
	x := (arena.Left + arena.Right) / 2
	y := arena.Top + spec.Gap

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PaddleComponent.Kind(), &component.Paddle{}); err != nil {
		return 0, fmt.Errorf("paddle: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PaddleControllerComponent.Kind(), &component.PaddleController{
		Speed:    spec.Speed,
		Width:    spec.Width,
		RestingY: y,
	}); err != nil {
		return 0, fmt.Errorf("paddle: add controller: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("paddle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("paddle: add velocity: %w", err)
	}

	radius := spec.Height / 2
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyKinematic,
		Width:      spec.Width - spec.Height,
		Radius:     radius,
		Capsule:    true,
		Elasticity: 1,
	}); err != nil {
		return 0, fmt.Errorf("paddle: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerPaddle}); err != nil {
		return 0, fmt.Errorf("paddle: add collision layer: %w", err)
	}
	if err := addCenteredSprite(w, e, img, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("paddle: %w", err)
	}
	return e, nil
}
