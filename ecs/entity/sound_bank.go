package entity

import (
	"fmt"

	"github.com/radmars/ld54/assets"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// PlaybackOpener creates a fresh playback for an asset file.
type PlaybackOpener func(file string) (component.Playback, error)

// OpenAssetPlayback decodes an embedded wav file into an ebiten player.
func OpenAssetPlayback(file string) (component.Playback, error) {
	p, err := assets.LoadAudioPlayer(file)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewSoundBank resolves sounds.yaml into sources. Each trigger opens a new
// playback, so the same effect can overlap itself.
func NewSoundBank(spec prefabs.SoundsSpec, open PlaybackOpener) (component.SoundBank, error) {
	if open == nil {
		return component.SoundBank{}, fmt.Errorf("sound bank: nil opener")
	}
	bank := component.SoundBank{Sources: make(map[string]component.SoundSource, len(spec.Sounds))}
	for name, s := range spec.Sounds {
		file := s.File
		volume := s.Volume
		if volume <= 0 {
			volume = 1
		}
		bank.Sources[name] = component.SoundSource{
			Duration: s.Duration,
			Volume:   volume,
			New: func() (component.Playback, error) {
				p, err := open(file)
				if err != nil {
					return nil, fmt.Errorf("sound %q: %w", file, err)
				}
				return p, nil
			},
		}
	}
	return bank, nil
}
