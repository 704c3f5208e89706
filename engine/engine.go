package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
)

// Stage is what the loop drives each frame, usually a *scene.Scene or a type wrapping one
type Stage interface {
	Update(dt float64)
	Render(r render.Renderer)
}

// binder is implemented by stages that expose the frame context to their entities
type binder interface {
	Bind(ctx scene.Context)
}

// Stats describes loop progress
type Stats struct {
	Frames    uint64
	Steps     uint64        // Stage updates run, differs from Frames in fixed mode
	LastDelta time.Duration // Measured frame time after clamping
	Clamped   uint64        // Frames whose dt hit MaxDelta
	Dropped   time.Duration // Accumulated time discarded by the MaxSteps cap
	Elapsed   time.Duration // Game time, excluding pauses
}

// Engine is the loop driver: dt from a monotonic provider, then events, update, render, input aging
// Timing state is owned here; Step and Run must be called from a single goroutine
type Engine struct {
	cfg      Config
	stage    Stage
	renderer render.Renderer
	source   EventSource
	input    *input.State
	bindings input.Bindings
	provider TimeProvider
	clock    *PausableClock
	logger   *zap.Logger

	last   time.Time
	acc    time.Duration
	quit   atomic.Bool
	paused atomic.Bool
	stats  Stats
}

var _ scene.Context = (*Engine)(nil)

// Option configures an Engine
type Option func(*Engine)

// WithConfig sets loop timing
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithTimeProvider replaces the monotonic system clock
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) { e.provider = tp }
}

// WithBindings sets the action bindings exposed to entities
func WithBindings(b input.Bindings) Option {
	return func(e *Engine) { e.bindings = b }
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine driving stage; a nil source yields no events
func New(stage Stage, r render.Renderer, source EventSource, opts ...Option) (*Engine, error) {
	if stage == nil {
		return nil, errors.New("engine: nil stage")
	}
	if r == nil {
		return nil, errors.New("engine: nil renderer")
	}
	if source == nil {
		source = NewSliceSource()
	}

	e := &Engine{
		cfg:      DefaultConfig(),
		stage:    stage,
		renderer: r,
		source:   source,
		input:    input.NewState(),
		bindings: input.DefaultBindings(),
		provider: NewMonotonicTimeProvider(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "engine: config")
	}

	e.clock = NewPausableClock(e.provider)
	e.last = e.provider.Now()
	if b, ok := stage.(binder); ok {
		b.Bind(e)
	}
	return e, nil
}

// Input returns the input state read by entities
func (e *Engine) Input() *input.State {
	return e.input
}

// Bindings returns the action bindings
func (e *Engine) Bindings() input.Bindings {
	return e.bindings
}

// Renderer returns the render collaborator
func (e *Engine) Renderer() render.Renderer {
	return e.renderer
}

// Elapsed returns game time since the engine was created, excluding pauses
func (e *Engine) Elapsed() time.Duration {
	return e.clock.Elapsed()
}

// Quit requests loop termination after the current frame; safe from any goroutine
func (e *Engine) Quit() {
	if e.quit.CompareAndSwap(false, true) {
		e.logger.Info("quit requested")
	}
}

// Quitting reports whether a quit was requested
func (e *Engine) Quitting() bool {
	return e.quit.Load()
}

// SetPaused freezes game time; the stage keeps receiving dt = 0 updates so it can unpause
func (e *Engine) SetPaused(paused bool) {
	if e.paused.Swap(paused) == paused {
		return
	}
	if paused {
		e.clock.Pause()
	} else {
		e.clock.Resume()
	}
	e.logger.Debug("pause toggled", zap.Bool("paused", paused))
}

// Paused reports the pause state
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// Stats returns a snapshot of loop counters
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Elapsed = e.clock.Elapsed()
	return s
}

// Step runs one frame and reports whether the loop should continue
// Order: measure dt, drain events, update stage, render, age input
func (e *Engine) Step() bool {
	dt := e.delta()

	e.source.Drain(e.handleEvent)

	steps, aged := e.update(dt)

	e.renderer.Clear(e.cfg.Background)
	e.stage.Render(e.renderer)
	e.renderer.Present()

	// Aging after render keeps Pressed/Released visible to the update and render of the frame;
	// fixed mode ages after its first step instead, and a frame with no step carries edges over
	if steps > 0 && !aged {
		e.input.Update()
	}

	e.stats.Frames++
	e.stats.Steps += uint64(steps)
	return !e.quit.Load()
}

// Run steps frames until quit, MaxFrames, or ctx cancellation
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("loop started",
		zap.Stringer("mode", e.cfg.Mode),
		zap.Duration("frame_interval", e.cfg.FrameInterval),
		zap.Duration("max_delta", e.cfg.MaxDelta),
	)
	e.last = e.provider.Now()

	var tick <-chan time.Time
	if e.cfg.FrameInterval > 0 {
		ticker := time.NewTicker(e.cfg.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			e.logStop("context done")
			return nil
		}
		if !e.Step() {
			e.logStop("quit")
			return nil
		}
		if e.cfg.MaxFrames > 0 && e.stats.Frames >= e.cfg.MaxFrames {
			e.logStop("frame limit")
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				e.logStop("context done")
				return nil
			case <-tick:
			}
		}
	}
}

func (e *Engine) logStop(reason string) {
	s := e.Stats()
	e.logger.Info("loop stopped",
		zap.String("reason", reason),
		zap.Uint64("frames", s.Frames),
		zap.Uint64("steps", s.Steps),
		zap.Duration("elapsed", s.Elapsed),
	)
}

// delta measures and clamps frame time
func (e *Engine) delta() time.Duration {
	now := e.provider.Now()
	dt := now.Sub(e.last)
	e.last = now
	if dt < 0 {
		dt = 0
	}
	if e.cfg.MaxDelta > 0 && dt > e.cfg.MaxDelta {
		e.logger.Debug("frame time clamped", zap.Duration("dt", dt), zap.Duration("max", e.cfg.MaxDelta))
		dt = e.cfg.MaxDelta
		e.stats.Clamped++
	}
	e.stats.LastDelta = dt
	return dt
}

func (e *Engine) handleEvent(ev input.Event) {
	if ev.Type == input.EventQuit {
		e.Quit()
	}
	e.input.HandleEvent(ev)
}

// update runs the stage per the step policy
// Returns the number of updates and whether input was already aged between them
func (e *Engine) update(dt time.Duration) (int, bool) {
	if e.paused.Load() {
		e.stage.Update(0)
		return 1, false
	}

	if e.cfg.Mode == StepVariable {
		e.stage.Update(dt.Seconds())
		return 1, false
	}

	e.acc += dt
	step := e.cfg.FixedStep
	steps := 0
	for e.acc >= step && steps < e.cfg.MaxSteps {
		e.stage.Update(step.Seconds())
		e.acc -= step
		steps++
		// Edges belong to the first step only
		if steps == 1 {
			e.input.Update()
		}
	}
	if e.acc >= step {
		dropped := e.acc - e.acc%step
		e.acc %= step
		e.stats.Dropped += dropped
		e.logger.Warn("simulation behind, dropping time",
			zap.Duration("dropped", dropped),
			zap.Int("max_steps", e.cfg.MaxSteps),
		)
	}
	return steps, steps > 0
}
