package system

import (
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

type fakePlayback struct {
	playing bool
	volume  float64
	closed  bool
}

func (f *fakePlayback) Play()                    { f.playing = true }
func (f *fakePlayback) Pause()                   { f.playing = false }
func (f *fakePlayback) SetVolume(volume float64) { f.volume = volume }
func (f *fakePlayback) Close() error {
	f.closed = true
	return nil
}

// addEntity creates an entity and applies each add func to it.
func addEntity(t *testing.T, w *ecs.World, adds ...func(ecs.Entity) error) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	for _, add := range adds {
		if err := add(e); err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
	return e
}

func with[T any](w *ecs.World, handle component.ComponentHandle[T], value T) func(ecs.Entity) error {
	return func(e ecs.Entity) error {
		v := value
		return ecs.Add(w, e, handle.Kind(), &v)
	}
}

// addSoundBank registers every standard sound with a short duration and
// returns the playbacks created so far, keyed by name.
func addSoundBank(t *testing.T, w *ecs.World) map[string][]*fakePlayback {
	t.Helper()
	created := make(map[string][]*fakePlayback)
	sources := make(map[string]component.SoundSource)
	for _, name := range []string{component.SoundBreak, component.SoundWall, component.SoundHit1, component.SoundHit2, component.SoundPaddle} {
		name := name
		sources[name] = component.SoundSource{
			Duration: 0.5,
			Volume:   0.8,
			New: func() (component.Playback, error) {
				p := &fakePlayback{}
				created[name] = append(created[name], p)
				return p, nil
			},
		}
	}
	addEntity(t, w, with(w, component.SoundBankComponent, component.SoundBank{Sources: sources}))
	return created
}

func soundNames(w *ecs.World) []string {
	var names []string
	ecs.ForEach(w, component.SoundComponent.Kind(), func(_ ecs.Entity, s *component.Sound) {
		names = append(names, s.Name)
	})
	return names
}
