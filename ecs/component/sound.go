package component

// Playback is the part of an audio player the game drives. *audio.Player
// from ebiten satisfies it.
type Playback interface {
	Play()
	Pause()
	SetVolume(volume float64)
	Close() error
}

// Sound is a fire-and-forget sound effect. The audio system starts it on the
// first tick it exists.
type Sound struct {
	Name     string
	Playback Playback
	Volume   float64
	Started  bool
}

var SoundComponent = NewComponent[Sound]()

// SoundSource creates a fresh playback for one trigger of a named sound.
type SoundSource struct {
	Duration float64
	Volume   float64
	New      func() (Playback, error)
}

// SoundBank resolves sound names to sources. It lives on the game state
// entity and is filled once at load time.
type SoundBank struct {
	Sources map[string]SoundSource
}

var SoundBankComponent = NewComponent[SoundBank]()

// Sound effect names.
const (
	SoundBreak  = "break"
	SoundWall   = "wall"
	SoundHit1   = "hit1"
	SoundHit2   = "hit2"
	SoundPaddle = "paddle"
)
