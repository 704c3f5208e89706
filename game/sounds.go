package game

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/gravity2d/audio"
)

// Sound and music cue names
const (
	SoundPickup = "pickup"
	SoundThud   = "thud"
	SoundClear  = "clear"
	MusicTheme  = "theme"
)

// Sounds plays named effects; *audio.Manager satisfies it
type Sounds interface {
	PlaySound(name string)
}

type silent struct{}

func (silent) PlaySound(string) {}

// RegisterSounds installs the game's cues on m
func RegisterSounds(m *audio.Manager) error {
	sounds := map[string]audio.Cue{
		SoundPickup: audio.Chime(880, 250*time.Millisecond),
		SoundThud:   audio.Thud(120 * time.Millisecond),
		SoundClear:  audio.Tone(660, 400*time.Millisecond),
	}
	for name, cue := range sounds {
		if err := m.RegisterSound(name, cue); err != nil {
			return errors.Wrapf(err, "register sound %s", name)
		}
	}
	return errors.Wrap(m.RegisterMusic(MusicTheme, audio.Pulse(110)), "register music")
}
