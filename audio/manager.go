package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultSampleRate is the speaker sample rate
	DefaultSampleRate = beep.SampleRate(44100)
	// MaxVolume is the top of the 0-128 volume scale
	MaxVolume = 128
)

var errInvalidTempo = errors.New("audio: tempo must be positive")

// Cue builds a fresh streamer for one playback
type Cue func(sr beep.SampleRate) (beep.Streamer, error)

// Output is the device sink the manager streams into
type Output interface {
	Start(sr beep.SampleRate, s beep.Streamer) error
	Stop()
}

// speakerOutput plays through the beep speaker
type speakerOutput struct{}

func (speakerOutput) Start(sr beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (speakerOutput) Stop() {
	speaker.Close()
}

// Manager plays named sound cues and one music track over a shared mixer
// Calls before Initialize, or after a failed one, are silent no-ops
type Manager struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	out    Output
	logger *zap.Logger

	root   *beep.Mixer
	sounds *beep.Mixer
	music  *beep.Mixer
	sfxVol *effects.Volume
	bgmVol *effects.Volume

	cues   map[string]Cue
	tracks map[string]Cue

	track     *beep.Ctrl
	trackName string

	soundLevel, musicLevel int
	initialized            bool
}

// Option configures a Manager
type Option func(*Manager)

// WithOutput replaces the speaker sink
func WithOutput(o Output) Option {
	return func(m *Manager) { m.out = o }
}

// WithSampleRate sets the stream sample rate
func WithSampleRate(sr beep.SampleRate) Option {
	return func(m *Manager) { m.sr = sr }
}

// WithLogger sets the manager logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an uninitialized manager at full volume
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sr:         DefaultSampleRate,
		out:        speakerOutput{},
		logger:     zap.NewNop(),
		root:       &beep.Mixer{},
		sounds:     &beep.Mixer{},
		music:      &beep.Mixer{},
		cues:       make(map[string]Cue),
		tracks:     make(map[string]Cue),
		soundLevel: MaxVolume,
		musicLevel: MaxVolume,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sfxVol = &effects.Volume{Streamer: m.sounds, Base: 2}
	m.bgmVol = &effects.Volume{Streamer: m.music, Base: 2}
	m.root.Add(m.sfxVol, m.bgmVol)
	return m
}

// Initialize opens the output device; a second call is a no-op
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := m.out.Start(m.sr, guarded{m}); err != nil {
		return errors.Wrap(err, "audio: start output")
	}
	m.initialized = true
	m.logger.Info("audio initialized", zap.Int("sample_rate", int(m.sr)))
	return nil
}

// Shutdown stops playback and closes the output device
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return
	}
	m.sounds.Clear()
	m.music.Clear()
	m.track, m.trackName = nil, ""
	m.initialized = false
	m.mu.Unlock()

	// Outside the lock: the device goroutine may be blocked in guarded.Stream
	m.out.Stop()
	m.logger.Info("audio shut down")
}

// Initialized reports whether the output device is open
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// RegisterSound stores a one-shot cue under name
func (m *Manager) RegisterSound(name string, cue Cue) error {
	return m.register(m.cues, name, cue)
}

// RegisterMusic stores an endless track under name
func (m *Manager) RegisterMusic(name string, cue Cue) error {
	return m.register(m.tracks, name, cue)
}

func (m *Manager) register(into map[string]Cue, name string, cue Cue) error {
	if name == "" {
		return errors.New("audio: empty cue name")
	}
	if cue == nil {
		return errors.Errorf("audio: nil cue for %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	into[name] = cue
	return nil
}

// PlaySound starts one playback of a registered cue; overlapping plays mix
func (m *Manager) PlaySound(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s, ok := m.build(m.cues, name)
	if !ok {
		return
	}
	m.sounds.Add(s)
}

// PlayMusic replaces the current track with a registered one
func (m *Manager) PlayMusic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	if m.trackName == name && m.track != nil {
		m.track.Paused = false
		return
	}
	s, ok := m.build(m.tracks, name)
	if !ok {
		return
	}
	m.music.Clear()
	m.track = &beep.Ctrl{Streamer: s}
	m.trackName = name
	m.music.Add(m.track)
}

// StopMusic ends the current track
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.music.Clear()
	m.track, m.trackName = nil, ""
}

// PauseMusic holds the current track at its position
func (m *Manager) PauseMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.track != nil {
		m.track.Paused = true
	}
}

// ResumeMusic continues a paused track
func (m *Manager) ResumeMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.track != nil {
		m.track.Paused = false
	}
}

// MusicPlaying reports whether a track is loaded and not paused
func (m *Manager) MusicPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track != nil && !m.track.Paused
}

// ActiveSounds returns the number of one-shot cues still playing
func (m *Manager) ActiveSounds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sounds.Len()
}

// SetSoundVolume sets the cue volume on the 0-128 scale, clamped
func (m *Manager) SetSoundVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.soundLevel = clampVolume(v)
	applyLevel(m.sfxVol, m.soundLevel)
}

// SetMusicVolume sets the music volume on the 0-128 scale, clamped
func (m *Manager) SetMusicVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicLevel = clampVolume(v)
	applyLevel(m.bgmVol, m.musicLevel)
}

// SoundVolume returns the cue volume
func (m *Manager) SoundVolume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.soundLevel
}

// MusicVolume returns the music volume
func (m *Manager) MusicVolume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicLevel
}

// build instantiates a cue; caller holds mu
func (m *Manager) build(from map[string]Cue, name string) (beep.Streamer, bool) {
	cue, ok := from[name]
	if !ok {
		m.logger.Debug("unknown audio cue", zap.String("name", name))
		return nil, false
	}
	s, err := cue(m.sr)
	if err != nil || s == nil {
		m.logger.Warn("audio cue failed", zap.String("name", name), zap.Error(err))
		return nil, false
	}
	return s, true
}

func clampVolume(v int) int {
	return max(0, min(MaxVolume, v))
}

// applyLevel maps 0-128 onto a base-2 gain; 0 silences
func applyLevel(vol *effects.Volume, level int) {
	if level <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(float64(level) / MaxVolume)
}

// guarded serializes the device goroutine against mixer mutation
type guarded struct {
	m *Manager
}

func (g guarded) Stream(samples [][2]float64) (n int, ok bool) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	return g.m.root.Stream(samples)
}

func (g guarded) Err() error { return nil }
