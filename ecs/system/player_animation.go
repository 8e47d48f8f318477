package system

import (
	"math"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// velocityEpsilon is the speed under which an axis counts as still.
const velocityEpsilon = 1.0

// PlayerAnimationSystem picks the player's clip from the velocity produced by
// the physics step: jump overrides walk overrides idle. Priority is
// recomputed every tick; MaybeChangeClip keeps the clip running while the
// choice is unchanged and restarts it on a transition.
type PlayerAnimationSystem struct{}

func NewPlayerAnimationSystem() *PlayerAnimationSystem {
	return &PlayerAnimationSystem{}
}

func (p *PlayerAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.Single(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	table, ok := ecs.Get(w, player, component.PlayerAnimationsComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, player, component.VelocityComponent.Kind())
	if !ok {
		return
	}

	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded
	}

	name := SelectPlayerClip(vel.X, vel.Y, grounded)
	if clip, ok := table.Table.Clip(name); ok {
		MaybeChangeClip(anim, clip)
	}

	if math.Abs(vel.X) > velocityEpsilon {
		if sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = vel.X < 0
		}
	}
}

// SelectPlayerClip maps a velocity (screen space, +Y down) to a clip name.
func SelectPlayerClip(vx, vy float64, grounded bool) string {
	if !grounded && math.Abs(vy) > velocityEpsilon {
		if vy < 0 {
			return component.ClipJumpUp
		}
		return component.ClipJumpDown
	}
	if math.Abs(vx) > velocityEpsilon {
		return component.ClipWalk
	}
	return component.ClipIdle
}
