package system

import (
	"fmt"
	"log"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

// TriggerEffect creates a transient entity that lives for duration seconds.
// When sound is non-nil the entity owns it and releases it on expiry.
func TriggerEffect(w *ecs.World, sound *component.Sound, duration float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("effect: nil world")
	}

	steps := []func(ecs.Entity) error{
		ecs.With(w, component.TimedEffectComponent.Kind(), &component.TimedEffect{Remaining: duration}),
	}
	if sound != nil {
		steps = append(steps, ecs.With(w, component.SoundComponent.Kind(), sound))
	}
	e, err := ecs.Build(w, steps...)
	if err != nil {
		return 0, fmt.Errorf("effect: %w", err)
	}
	return e, nil
}

// TriggerSound looks name up in the sound bank and spawns a timed effect that
// plays it. Unknown names and missing banks are logged and ignored.
func TriggerSound(w *ecs.World, name string) {
	bankEntity, ok := ecs.First(w, component.SoundBankComponent.Kind())
	if !ok {
		return
	}
	bank, ok := ecs.Get(w, bankEntity, component.SoundBankComponent.Kind())
	if !ok || bank.Sources == nil {
		return
	}
	source, ok := bank.Sources[name]
	if !ok {
		log.Printf("sound: unknown sound %q", name)
		return
	}

	var playback component.Playback
	if source.New != nil {
		p, err := source.New()
		if err != nil {
			log.Printf("sound: create %q: %v", name, err)
			return
		}
		playback = p
	}

	sound := &component.Sound{Name: name, Playback: playback, Volume: source.Volume}
	if _, err := TriggerEffect(w, sound, source.Duration); err != nil {
		log.Printf("sound: trigger %q: %v", name, err)
	}
}

// TimedEffectSystem counts effect lifetimes down and destroys expired
// effects, closing any sound they own.
type TimedEffectSystem struct{}

func NewTimedEffectSystem() *TimedEffectSystem {
	return &TimedEffectSystem{}
}

func (s *TimedEffectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.TimedEffectComponent.Kind(), func(e ecs.Entity, effect *component.TimedEffect) {
		effect.Remaining -= dt
		if effect.Remaining > 0 {
			return
		}

		if sound, ok := ecs.Get(w, e, component.SoundComponent.Kind()); ok {
			releaseSound(sound)
		}

		ecs.DestroyEntity(w, e)
	})
}

// StopSounds silences and releases every sound still playing in w. Call it
// before dropping a world.
func StopSounds(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.SoundComponent.Kind(), func(_ ecs.Entity, sound *component.Sound) {
		releaseSound(sound)
	})
}

func releaseSound(sound *component.Sound) {
	if sound.Playback == nil {
		return
	}
	sound.Playback.Pause()
	if err := sound.Playback.Close(); err != nil {
		log.Printf("sound: release %q: %v", sound.Name, err)
	}
	sound.Playback = nil
}
