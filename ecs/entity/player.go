package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// NewPlayer builds the player at its configured spawn point, playing the idle
// clip. sheet may be nil in tests.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, anims PlayerAnimations, sheet *ebiten.Image) (ecs.Entity, error) {
	idle, ok := anims.Table.Clip(component.ClipIdle)
	if !ok {
		return 0, fmt.Errorf("player: clip table has no %q clip", component.ClipIdle)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}

	health := spec.Health
	if health <= 0 {
		health = 3
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current:          health,
		Max:              health,
		InvulnerableTime: spec.InvulnerableSeconds,
	}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	state := component.NewAnimationState(idle)
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &state); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerAnimationsComponent.Kind(), &component.PlayerAnimations{Table: anims.Table}); err != nil {
		return 0, fmt.Errorf("player: add clip table: %w", err)
	}
	sheetGrid := anims.Sheet
	if err := ecs.Add(w, e, component.SpriteSheetComponent.Kind(), &sheetGrid); err != nil {
		return 0, fmt.Errorf("player: add sprite sheet: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     sheet,
		Source:    sheetGrid.Rect(idle.FirstFrame),
		UseSource: true,
		OriginX:   float64(sheetGrid.FrameW) / 2,
		// Feet sit on the bottom of the collider.
		OriginY: float64(sheetGrid.FrameH) - spec.Height/2,
	}); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          component.BodyDynamic,
		Width:         spec.Width,
		Height:        spec.Height,
		Mass:          1,
		GravityScale:  1,
		FixedRotation: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}); err != nil {
		return 0, fmt.Errorf("player: add player collision: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerRock | component.LayerWall | component.LayerBall,
	}); err != nil {
		return 0, fmt.Errorf("player: add collision layer: %w", err)
	}

	return e, nil
}
