package system

import (
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

type AudioSystem struct {
	Muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SoundComponent.Kind(), func(_ ecs.Entity, sound *component.Sound) {
		if sound.Started {
			return
		}
		sound.Started = true

		if sound.Playback == nil || a.Muted {
			return
		}
		sound.Playback.SetVolume(sound.Volume)
		sound.Playback.Play()
	})
}
