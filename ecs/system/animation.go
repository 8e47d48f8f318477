package system

import (
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// AdvanceAnimation adds dt to the state's elapsed time and steps as many
// frames as it covers. It returns how many times a looping clip wrapped. A
// non-looping clip holds its last frame forever once reached.
func AdvanceAnimation(state *component.AnimationState, dt float64) int {
	if state == nil || dt <= 0 {
		return 0
	}
	clip := state.Clip
	if clip.FrameDuration <= 0 {
		return 0
	}
	if !clip.Loop && state.Frame >= clip.LastFrame {
		state.Frame = clip.LastFrame
		return 0
	}

	loops := 0
	state.Elapsed += dt
	for state.Elapsed >= clip.FrameDuration {
		state.Elapsed -= clip.FrameDuration
		state.Frame++
		if state.Frame <= clip.LastFrame {
			continue
		}
		if clip.Loop {
			state.Frame = clip.FirstFrame
			loops++
			continue
		}
		state.Frame = clip.LastFrame
		state.Elapsed = 0
		break
	}
	return loops
}

// MaybeChangeClip switches to candidate unless the state already plays a
// clip with the same first frame. Clips are identified by their first frame
// only, so calling this every tick with the active clip keeps progress.
func MaybeChangeClip(state *component.AnimationState, candidate component.AnimationClip) bool {
	if state == nil || state.Clip.FirstFrame == candidate.FirstFrame {
		return false
	}
	*state = component.NewAnimationState(candidate)
	return true
}

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.AnimationState) {
		loops := AdvanceAnimation(anim, dt)
		for i := 0; i < loops; i++ {
			w.Events().Push(ecs.Event{
				Type: ecs.EventAnimationLoopCompleted,
				Data: ecs.AnimationLoopCompleted{Entity: e},
			})
		}

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return
		}
		sheet, ok := ecs.Get(w, e, component.SpriteSheetComponent.Kind())
		if !ok {
			return
		}
		sprite.Source = sheet.Rect(anim.Frame)
		sprite.UseSource = true
	})
}

// AnimationStatsSystem drains loop completion events into AnimationStats.
type AnimationStatsSystem struct{}

func NewAnimationStatsSystem() *AnimationStatsSystem {
	return &AnimationStatsSystem{}
}

func (s *AnimationStatsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().DrainType(ecs.EventAnimationLoopCompleted)
	if len(events) == 0 {
		return
	}
	ent, ok := ecs.First(w, component.AnimationStatsComponent.Kind())
	if !ok {
		return
	}
	stats, ok := ecs.Get(w, ent, component.AnimationStatsComponent.Kind())
	if !ok {
		return
	}
	if stats.Loops == nil {
		stats.Loops = make(map[uint64]int)
	}
	for _, evt := range events {
		done, ok := evt.Data.(ecs.AnimationLoopCompleted)
		if !ok {
			continue
		}
		stats.Loops[uint64(done.Entity)]++
		stats.Total++
	}
}
