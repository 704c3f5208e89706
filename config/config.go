package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/gravity2d/engine"
	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/vmath"
)

// ErrInvalid is the cause of every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Loop    LoopConfig    `yaml:"loop"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig sizes the world and its mapping onto terminal cells
type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

type LoopConfig struct {
	Mode      string        `yaml:"mode"`
	FixedStep time.Duration `yaml:"fixed_step"`
	MaxSteps  int           `yaml:"max_steps"`
	MaxDelta  time.Duration `yaml:"max_delta"`
	TargetFPS int           `yaml:"target_fps"` // 0 runs unthrottled
	MaxFrames uint64        `yaml:"max_frames"` // 0 runs until quit
}

type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vector) Vec2() vmath.Vec2 {
	return vmath.V(v.X, v.Y)
}

type PhysicsConfig struct {
	Gravity    Vector `yaml:"gravity"`
	Collisions bool   `yaml:"collisions"`
}

// InputConfig carries sparse binding overrides on top of input.DefaultBindings
type InputConfig struct {
	ReleaseTimeout time.Duration       `yaml:"release_timeout"`
	Bindings       map[string][]string `yaml:"bindings"`
}

type AudioConfig struct {
	Enabled     bool `yaml:"enabled"`
	SoundVolume int  `yaml:"sound_volume"`
	MusicVolume int  `yaml:"music_volume"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`    // debug, info, warn, error, off
	Encoding  string `yaml:"encoding"` // console or json
	File      string `yaml:"file"`     // empty writes to stderr
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// Default returns the complete default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "gravity2d",
			Width:      800,
			Height:     600,
			CellWidth:  10,
			CellHeight: 20,
		},
		Loop: LoopConfig{
			Mode:      engine.StepVariable.String(),
			FixedStep: time.Second / 60,
			MaxSteps:  5,
			TargetFPS: 60,
		},
		Physics: PhysicsConfig{
			Gravity:    Vector{X: 0, Y: 500},
			Collisions: true,
		},
		Input: InputConfig{
			ReleaseTimeout: 700 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:     true,
			SoundVolume: 128,
			MusicVolume: 64,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Encoding:  "console",
			File:      "logs/gravity.log",
			MaxSizeMB: 10,
		},
	}
}

// Load overlays the YAML file at path onto the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations; failures wrap ErrInvalid
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrap(ErrInvalid, "window size must be positive")
	case c.Window.CellWidth <= 0 || c.Window.CellHeight <= 0:
		return errors.Wrap(ErrInvalid, "window cell size must be positive")
	case c.Loop.TargetFPS < 0:
		return errors.Wrap(ErrInvalid, "loop.target_fps must not be negative")
	case c.Input.ReleaseTimeout < 0:
		return errors.Wrap(ErrInvalid, "input.release_timeout must not be negative")
	case c.Audio.SoundVolume < 0 || c.Audio.SoundVolume > 128:
		return errors.Wrap(ErrInvalid, "audio.sound_volume must be within 0-128")
	case c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 128:
		return errors.Wrap(ErrInvalid, "audio.music_volume must be within 0-128")
	case c.Logging.MaxSizeMB < 0:
		return errors.Wrap(ErrInvalid, "logging.max_size_mb must not be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "off":
	default:
		return errors.Wrapf(ErrInvalid, "logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return errors.Wrapf(ErrInvalid, "logging.encoding %q", c.Logging.Encoding)
	}

	if _, err := c.Loop.Engine(); err != nil {
		return err
	}
	if _, err := c.Input.KeyBindings(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Engine converts the loop section into an engine configuration
func (l LoopConfig) Engine() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	mode, err := engine.ParseStepMode(l.Mode)
	if err != nil {
		return cfg, errors.Wrap(ErrInvalid, err.Error())
	}
	cfg.Mode = mode
	cfg.FixedStep = l.FixedStep
	cfg.MaxSteps = l.MaxSteps
	cfg.MaxDelta = l.MaxDelta
	cfg.MaxFrames = l.MaxFrames
	cfg.FrameInterval = 0
	if l.TargetFPS > 0 {
		cfg.FrameInterval = time.Second / time.Duration(l.TargetFPS)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(ErrInvalid, err.Error())
	}
	return cfg, nil
}

// KeyBindings resolves the configured overrides against the default bindings
func (i InputConfig) KeyBindings() (input.Bindings, error) {
	return input.LoadBindings(input.DefaultBindings(), i.Bindings)
}
