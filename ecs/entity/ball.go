package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

func NewBall(w *ecs.World, spec prefabs.BallSpec, img *ebiten.Image, x, y, vx, vy float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BallComponent.Kind(), &component.Ball{}); err != nil {
		return 0, fmt.Errorf("ball: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("ball: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}); err != nil {
		return 0, fmt.Errorf("ball: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          component.BodyDynamic,
		Radius:        spec.Radius,
		Mass:          1,
		Elasticity:    1,
		FixedRotation: true,
	}); err != nil {
		return 0, fmt.Errorf("ball: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerBall}); err != nil {
		return 0, fmt.Errorf("ball: add collision layer: %w", err)
	}
	if err := addCenteredSprite(w, e, img, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("ball: %w", err)
	}
	return e, nil
}

// BallSpawner binds the ball spec and image for the spawn system.
func BallSpawner(spec prefabs.BallSpec, img *ebiten.Image) func(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error) {
	return func(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error) {
		return NewBall(w, spec, img, x, y, vx, vy)
	}
}

// addCenteredSprite adds a sprite whose origin is the image centre. A nil
// image adds nothing.
func addCenteredSprite(w *ecs.World, e ecs.Entity, img *ebiten.Image, layer int) error {
	if img == nil {
		return nil
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(iw) / 2,
		OriginY: float64(ih) / 2,
	}); err != nil {
		return fmt.Errorf("add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return fmt.Errorf("add render layer: %w", err)
	}
	return nil
}
