package component

import (
	"errors"
	"fmt"
)

// ErrDuplicateFirstFrame is returned when two clips of one table start on the
// same frame. Clip switching identifies clips by their first frame, so such a
// table could never switch between the two.
var ErrDuplicateFirstFrame = errors.New("animation: duplicate first frame")

// AnimationClip is an immutable frame range played at a fixed frame duration.
type AnimationClip struct {
	FirstFrame    uint
	LastFrame     uint
	FrameDuration float64
	Loop          bool
}

// Frames returns the number of frames in the clip.
func (c AnimationClip) Frames() uint {
	if c.LastFrame < c.FirstFrame {
		return 0
	}
	return c.LastFrame - c.FirstFrame + 1
}

// AnimationState is the per-entity playback cursor. Clip is a copy of the
// table entry, never a reference into the table.
type AnimationState struct {
	Clip    AnimationClip
	Elapsed float64
	Frame   uint
}

// NewAnimationState starts clip from its first frame.
func NewAnimationState(clip AnimationClip) AnimationState {
	return AnimationState{Clip: clip, Frame: clip.FirstFrame}
}

var AnimationComponent = NewComponent[AnimationState]()

// AnimationTable maps clip names to clips for one character.
type AnimationTable struct {
	clips map[string]AnimationClip
}

// NewAnimationTable validates clips and builds a table.
func NewAnimationTable(clips map[string]AnimationClip) (AnimationTable, error) {
	byFirst := make(map[uint]string, len(clips))
	out := make(map[string]AnimationClip, len(clips))
	for name, clip := range clips {
		if clip.LastFrame < clip.FirstFrame {
			return AnimationTable{}, fmt.Errorf("animation: clip %q: last frame %d before first frame %d", name, clip.LastFrame, clip.FirstFrame)
		}
		if clip.FrameDuration <= 0 {
			return AnimationTable{}, fmt.Errorf("animation: clip %q: frame duration must be positive", name)
		}
		if other, ok := byFirst[clip.FirstFrame]; ok {
			return AnimationTable{}, fmt.Errorf("%w: %q and %q start at %d", ErrDuplicateFirstFrame, other, name, clip.FirstFrame)
		}
		byFirst[clip.FirstFrame] = name
		out[name] = clip
	}
	return AnimationTable{clips: out}, nil
}

// Clip returns the named clip.
func (t AnimationTable) Clip(name string) (AnimationClip, bool) {
	clip, ok := t.clips[name]
	return clip, ok
}

// MustClip returns the named clip and panics if the table lacks it.
func (t AnimationTable) MustClip(name string) AnimationClip {
	clip, ok := t.clips[name]
	if !ok {
		panic(fmt.Sprintf("animation: table has no clip %q", name))
	}
	return clip
}

// Names returns the clip names in no particular order.
func (t AnimationTable) Names() []string {
	names := make([]string, 0, len(t.clips))
	for name := range t.clips {
		names = append(names, name)
	}
	return names
}

// Player clip names.
const (
	ClipIdle     = "idle"
	ClipWalk     = "walk"
	ClipJumpUp   = "jump_up"
	ClipJumpDown = "jump_down"
)

// PlayerAnimations is the clip table used by the player clip selector.
type PlayerAnimations struct {
	Table AnimationTable
}

var PlayerAnimationsComponent = NewComponent[PlayerAnimations]()
