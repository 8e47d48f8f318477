package entity

import (
	"fmt"

	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// PlayerAnimations is the validated clip table plus the sheet grid it indexes.
type PlayerAnimations struct {
	Table component.AnimationTable
	Sheet component.SpriteSheet
}

// NewPlayerAnimations converts animations.yaml into a clip table. Every
// player clip name must be present.
func NewPlayerAnimations(spec prefabs.AnimationsSpec) (PlayerAnimations, error) {
	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, c := range spec.Clips {
		clips[name] = component.AnimationClip{
			FirstFrame:    c.First,
			LastFrame:     c.Last,
			FrameDuration: c.FrameDuration,
			Loop:          c.Loop,
		}
	}

	table, err := component.NewAnimationTable(clips)
	if err != nil {
		return PlayerAnimations{}, fmt.Errorf("player animations: %w", err)
	}
	for _, name := range []string{component.ClipIdle, component.ClipWalk, component.ClipJumpUp, component.ClipJumpDown} {
		if _, ok := table.Clip(name); !ok {
			return PlayerAnimations{}, fmt.Errorf("player animations: missing clip %q", name)
		}
	}

	if spec.FrameW <= 0 || spec.FrameH <= 0 {
		return PlayerAnimations{}, fmt.Errorf("player animations: frame size %dx%d", spec.FrameW, spec.FrameH)
	}

	return PlayerAnimations{
		Table: table,
		Sheet: component.SpriteSheet{FrameW: spec.FrameW, FrameH: spec.FrameH, Columns: spec.Columns},
	}, nil
}
