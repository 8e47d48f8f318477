package system

import (
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// PlayerControllerSystem turns input into the player's velocity before the
// physics step.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.Single(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	tuning, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, player, component.VelocityComponent.Kind())
	if !ok {
		return
	}

	vel.X = input.MoveX * tuning.MoveSpeed

	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded
	}
	if input.JumpPressed && grounded {
		vel.Y = -tuning.JumpSpeed
	}
}
