package engine

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/gravity2d/render"
)

// StepMode selects how frame time is turned into simulation updates
type StepMode uint8

const (
	// StepVariable runs one update per frame with the measured dt
	StepVariable StepMode = iota
	// StepFixed accumulates frame time and runs zero or more fixed-size updates
	StepFixed
)

func (m StepMode) String() string {
	switch m {
	case StepVariable:
		return "variable"
	case StepFixed:
		return "fixed"
	default:
		return "invalid"
	}
}

// ParseStepMode maps a config name to a StepMode
func ParseStepMode(s string) (StepMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "variable":
		return StepVariable, nil
	case "fixed":
		return StepFixed, nil
	}
	return StepVariable, errors.Errorf("unknown step mode %q", s)
}

// Config controls loop timing
type Config struct {
	Mode      StepMode
	FixedStep time.Duration // Update size in StepFixed mode
	MaxSteps  int           // Cap on fixed updates per frame; excess time is dropped
	MaxDelta  time.Duration // Clamp on measured frame time, 0 disables

	FrameInterval time.Duration // Run pacing, 0 runs frames back to back
	MaxFrames     uint64        // Run stops after this many frames, 0 is unbounded

	Background render.Color
}

// DefaultConfig returns variable stepping paced at 60 frames per second
func DefaultConfig() Config {
	return Config{
		Mode:          StepVariable,
		FixedStep:     time.Second / 60,
		MaxSteps:      5,
		FrameInterval: time.Second / 60,
		Background:    render.RGBA(30, 30, 60, 255),
	}
}

// Validate checks the fields the active mode depends on
func (c Config) Validate() error {
	if c.Mode != StepVariable && c.Mode != StepFixed {
		return errors.Errorf("invalid step mode %d", c.Mode)
	}
	if c.Mode == StepFixed {
		if c.FixedStep <= 0 {
			return errors.New("fixed step must be positive")
		}
		if c.MaxSteps <= 0 {
			return errors.New("max steps must be positive")
		}
	}
	if c.MaxDelta < 0 || c.FrameInterval < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
