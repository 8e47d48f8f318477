package system

import (
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

func TestTimedEffectLifetime(t *testing.T) {
	w := ecs.NewWorld()
	playback := &fakePlayback{}
	e, err := TriggerEffect(w, &component.Sound{Name: "x", Playback: playback}, 0.417)
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}

	sys := NewTimedEffectSystem()
	w.SetDelta(0.4)
	sys.Update(w)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("effect should still be alive after 0.4s")
	}
	if playback.closed {
		t.Fatalf("sound released too early")
	}

	w.SetDelta(0.02)
	sys.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("effect should be gone after 0.42s")
	}
	if !playback.closed {
		t.Fatalf("sound should be released on expiry")
	}
}

func TestTimedEffectZeroDuration(t *testing.T) {
	w := ecs.NewWorld()
	e, err := TriggerEffect(w, nil, 0)
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	w.SetDelta(1.0 / 60)
	NewTimedEffectSystem().Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("zero duration effect should expire on its first tick")
	}
}

func TestTriggerSound(t *testing.T) {
	tests := []struct {
		name      string
		sound     string
		withBank  bool
		wantCount int
	}{
		{"known_sound", component.SoundBreak, true, 1},
		{"unknown_sound", "nope", true, 0},
		{"no_bank", component.SoundBreak, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if tc.withBank {
				addSoundBank(t, w)
			}
			TriggerSound(w, tc.sound)
			if got := len(soundNames(w)); got != tc.wantCount {
				t.Fatalf("expected %d sounds, got %d", tc.wantCount, got)
			}
		})
	}
}

func TestAudioSystemStartsOnce(t *testing.T) {
	w := ecs.NewWorld()
	created := addSoundBank(t, w)
	TriggerSound(w, component.SoundWall)

	audio := NewAudioSystem()
	audio.Update(w)
	p := created[component.SoundWall][0]
	if !p.playing || p.volume != 0.8 {
		t.Fatalf("expected sound playing at 0.8, got %+v", p)
	}

	p.playing = false
	audio.Update(w)
	if p.playing {
		t.Fatalf("sound should only be started once")
	}
}

func TestStopSounds(t *testing.T) {
	w := ecs.NewWorld()
	pb := &fakePlayback{playing: true}
	e := addEntity(t, w, with(w, component.SoundComponent, component.Sound{Name: "wall", Playback: pb, Started: true}))

	StopSounds(w)

	if pb.playing || !pb.closed {
		t.Fatalf("expected playback paused and closed, got %+v", pb)
	}
	sound, _ := ecs.Get(w, e, component.SoundComponent.Kind())
	if sound.Playback != nil {
		t.Fatalf("released sound should drop its playback")
	}
}
