package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gravity2d/engine"
	"github.com/lixenwraith/gravity2d/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gravity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	ec, err := cfg.Loop.Engine()
	require.NoError(t, err)
	assert.Equal(t, engine.StepVariable, ec.Mode)
	assert.Equal(t, time.Second/60, ec.FrameInterval)
	assert.Equal(t, 500.0, cfg.Physics.Gravity.Vec2().Y)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: demo
loop:
  mode: fixed
  fixed_step: 10ms
  max_delta: 250ms
  target_fps: 0
physics:
  gravity: {x: 0, y: 9.8}
input:
  bindings:
    quit: [q]
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800.0, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, 9.8, cfg.Physics.Gravity.Y)
	assert.Equal(t, "debug", cfg.Logging.Level)

	ec, err := cfg.Loop.Engine()
	require.NoError(t, err)
	assert.Equal(t, engine.StepFixed, ec.Mode)
	assert.Equal(t, 10*time.Millisecond, ec.FixedStep)
	assert.Equal(t, 5, ec.MaxSteps)
	assert.Equal(t, 250*time.Millisecond, ec.MaxDelta)
	assert.Zero(t, ec.FrameInterval)

	b, err := cfg.Input.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, []input.Key{input.KeyFromRune('q')}, b[input.ActionQuit])
	assert.Equal(t, input.DefaultBindings()[input.ActionLeft], b[input.ActionLeft])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "window: [unclosed"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero cell", func(c *Config) { c.Window.CellHeight = 0 }},
		{"negative fps", func(c *Config) { c.Loop.TargetFPS = -1 }},
		{"unknown mode", func(c *Config) { c.Loop.Mode = "elastic" }},
		{"fixed without step", func(c *Config) { c.Loop.Mode = "fixed"; c.Loop.FixedStep = 0 }},
		{"fixed without steps", func(c *Config) { c.Loop.Mode = "fixed"; c.Loop.MaxSteps = 0 }},
		{"negative release", func(c *Config) { c.Input.ReleaseTimeout = -time.Second }},
		{"bad binding", func(c *Config) { c.Input.Bindings = map[string][]string{"jump": {"nope"}} }},
		{"loud sound", func(c *Config) { c.Audio.SoundVolume = 129 }},
		{"quiet music", func(c *Config) { c.Audio.MusicVolume = -1 }},
		{"level", func(c *Config) { c.Logging.Level = "trace" }},
		{"encoding", func(c *Config) { c.Logging.Encoding = "xml" }},
		{"size", func(c *Config) { c.Logging.MaxSizeMB = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "audio:\n  sound_volume: 500\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
}
