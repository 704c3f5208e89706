package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
)

var keyA = input.KeyFromRune('a')

// stageRecorder records what the loop hands to the stage
type stageRecorder struct {
	ctx      scene.Context
	dts      []float64
	pressed  []bool
	renders  int
	onUpdate func(ctx scene.Context)
}

func (s *stageRecorder) Bind(ctx scene.Context) { s.ctx = ctx }

func (s *stageRecorder) Update(dt float64) {
	s.dts = append(s.dts, dt)
	s.pressed = append(s.pressed, s.ctx.Input().IsKeyPressed(keyA))
	if s.onUpdate != nil {
		s.onUpdate(s.ctx)
	}
}

func (s *stageRecorder) Render(r render.Renderer) {
	s.renders++
	r.DrawRect(render.Rect{W: 1, H: 1}, render.White, true)
}

type harness struct {
	eng   *Engine
	stage *stageRecorder
	clock *ManualClock
	rec   *render.Recorder
	src   *SliceSource
}

func newHarness(t *testing.T, cfg Config, frames ...[]input.Event) *harness {
	t.Helper()
	h := &harness{
		stage: &stageRecorder{},
		clock: NewManualClock(time.Unix(1000, 0)),
		rec:   render.NewRecorder(),
		src:   NewSliceSource(frames...),
	}
	eng, err := New(h.stage, h.rec, h.src, WithConfig(cfg), WithTimeProvider(h.clock))
	require.NoError(t, err)
	h.eng = eng
	return h
}

func (h *harness) step(d time.Duration) bool {
	h.clock.Advance(d)
	return h.eng.Step()
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, render.NewRecorder(), nil)
	assert.Error(t, err)

	_, err = New(&stageRecorder{}, nil, nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Mode = StepFixed
	cfg.FixedStep = 0
	_, err = New(&stageRecorder{}, render.NewRecorder(), nil, WithConfig(cfg))
	assert.ErrorContains(t, err, "fixed step")
}

func TestNewBindsContext(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NotNil(t, h.stage.ctx)
	assert.Same(t, h.eng, h.stage.ctx)
	assert.Same(t, h.rec, h.stage.ctx.Renderer())
	assert.Equal(t, input.DefaultBindings(), h.stage.ctx.Bindings())
}

func TestVariableStepDelta(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	assert.True(t, h.step(16*time.Millisecond))
	assert.True(t, h.step(33*time.Millisecond))

	require.Len(t, h.stage.dts, 2)
	assert.InDelta(t, 0.016, h.stage.dts[0], 1e-12)
	assert.InDelta(t, 0.033, h.stage.dts[1], 1e-12)

	s := h.eng.Stats()
	assert.Equal(t, uint64(2), s.Frames)
	assert.Equal(t, uint64(2), s.Steps)
	assert.Equal(t, 33*time.Millisecond, s.LastDelta)
	assert.Equal(t, 49*time.Millisecond, s.Elapsed)
}

func TestFramePhases(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.step(time.Millisecond)

	frame := h.rec.LastFrame()
	require.Len(t, frame, 3)
	assert.Equal(t, render.OpClear, frame[0].Kind)
	assert.Equal(t, DefaultConfig().Background, frame[0].Color)
	assert.Equal(t, render.OpRect, frame[1].Kind)
	assert.Equal(t, render.OpPresent, frame[2].Kind)
	assert.Equal(t, 1, h.stage.renders)
}

func TestPressedVisibleForOneFrame(t *testing.T) {
	h := newHarness(t, DefaultConfig(),
		[]input.Event{input.KeyDownEvent(keyA)},
		nil,
		[]input.Event{input.KeyUpEvent(keyA)},
	)

	h.step(time.Millisecond)
	h.step(time.Millisecond)
	assert.Equal(t, []bool{true, false}, h.stage.pressed)
	assert.Equal(t, input.Down, h.eng.Input().KeyState(keyA))

	h.step(time.Millisecond)
	assert.Equal(t, input.Up, h.eng.Input().KeyState(keyA), "released edge aged after the frame")
}

func TestQuitEvent(t *testing.T) {
	h := newHarness(t, DefaultConfig(), []input.Event{input.Quit()})

	assert.False(t, h.step(time.Millisecond))
	assert.True(t, h.eng.Quitting())
	assert.Len(t, h.stage.dts, 1, "the quitting frame still runs")
	assert.Equal(t, 1, h.rec.Frames())
}

func TestQuitFromGameLogic(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.stage.onUpdate = func(ctx scene.Context) { ctx.Quit() }
	assert.False(t, h.step(time.Millisecond))
}

func TestMaxDeltaClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDelta = 100 * time.Millisecond
	h := newHarness(t, cfg)

	h.step(time.Second)
	assert.InDelta(t, 0.1, h.stage.dts[0], 1e-12)
	assert.Equal(t, uint64(1), h.eng.Stats().Clamped)

	h.step(50 * time.Millisecond)
	assert.InDelta(t, 0.05, h.stage.dts[1], 1e-12)
	assert.Equal(t, uint64(1), h.eng.Stats().Clamped)
}

func TestFixedStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = StepFixed
	cfg.FixedStep = 10 * time.Millisecond
	cfg.MaxSteps = 3
	h := newHarness(t, cfg,
		nil,
		[]input.Event{input.KeyDownEvent(keyA)},
	)

	h.step(25 * time.Millisecond)
	assert.Len(t, h.stage.dts, 2)
	for _, dt := range h.stage.dts {
		assert.InDelta(t, 0.01, dt, 1e-12)
	}

	// 9ms accumulated: no update, edge survives to the next stepping frame
	h.step(4 * time.Millisecond)
	assert.Len(t, h.stage.dts, 2)
	assert.Equal(t, input.Pressed, h.eng.Input().KeyState(keyA))

	h.step(time.Millisecond)
	require.Len(t, h.stage.dts, 3)
	assert.True(t, h.stage.pressed[2])
	assert.Equal(t, input.Down, h.eng.Input().KeyState(keyA))

	// Stall: capped at MaxSteps, remainder dropped
	h.step(100 * time.Millisecond)
	assert.Len(t, h.stage.dts, 6)
	s := h.eng.Stats()
	assert.Equal(t, 70*time.Millisecond, s.Dropped)
	assert.Equal(t, uint64(6), s.Steps)
	assert.Equal(t, uint64(4), s.Frames)
	assert.Zero(t, h.eng.acc)
}

func TestFixedStepEdgesOnlyInFirstStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = StepFixed
	cfg.FixedStep = 10 * time.Millisecond
	cfg.MaxSteps = 5
	var released []bool
	h := newHarness(t, cfg,
		[]input.Event{input.KeyDownEvent(keyA)},
		[]input.Event{input.KeyUpEvent(keyA)},
	)
	h.stage.onUpdate = func(ctx scene.Context) {
		released = append(released, ctx.Input().IsKeyReleased(keyA))
	}

	h.step(35 * time.Millisecond)
	assert.Equal(t, []bool{true, false, false}, h.stage.pressed)
	assert.Equal(t, input.Down, h.eng.Input().KeyState(keyA))

	// acc 5ms + 15ms = 2 steps
	h.step(15 * time.Millisecond)
	assert.Equal(t, []bool{false, false, false, true, false}, released)
	assert.Equal(t, input.Up, h.eng.Input().KeyState(keyA))
}

func TestPause(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.clock.Advance(10 * time.Millisecond)
	h.eng.SetPaused(true)
	assert.True(t, h.eng.Paused())
	h.eng.Step()
	h.step(time.Second)
	assert.Equal(t, []float64{0, 0}, h.stage.dts)
	assert.Equal(t, 10*time.Millisecond, h.eng.Elapsed())

	h.eng.SetPaused(false)
	h.step(10 * time.Millisecond)
	assert.InDelta(t, 0.01, h.stage.dts[2], 1e-12)
	assert.Equal(t, 20*time.Millisecond, h.eng.Elapsed())
}

func TestRunFrameLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = 0
	cfg.MaxFrames = 5
	h := newHarness(t, cfg)

	require.NoError(t, h.eng.Run(context.Background()))
	assert.Equal(t, uint64(5), h.eng.Stats().Frames)
}

func TestRunStopsOnQuit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	h := newHarness(t, cfg, nil, nil, []input.Event{input.Quit()})

	require.NoError(t, h.eng.Run(context.Background()))
	assert.Equal(t, uint64(3), h.eng.Stats().Frames)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = 0
	h := newHarness(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.eng.Run(ctx))
	assert.Zero(t, h.eng.Stats().Frames)
}

func TestQuitFromAnotherGoroutine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	h := newHarness(t, cfg)

	done := make(chan error, 1)
	go func() { done <- h.eng.Run(context.Background()) }()
	h.eng.Quit()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestChannelSource(t *testing.T) {
	src := NewChannelSource(2)
	assert.True(t, src.Send(input.KeyDownEvent(keyA)))
	assert.True(t, src.Send(input.KeyUpEvent(keyA)))
	assert.False(t, src.Send(input.Quit()), "full buffer drops")

	var got []input.Event
	src.Drain(func(ev input.Event) { got = append(got, ev) })
	assert.Equal(t, []input.Event{input.KeyDownEvent(keyA), input.KeyUpEvent(keyA)}, got)

	got = got[:0]
	src.Drain(func(ev input.Event) { got = append(got, ev) })
	assert.Empty(t, got)
}

func TestSliceSourcePush(t *testing.T) {
	src := NewSliceSource()
	src.Push(input.KeyDownEvent(keyA))
	assert.Equal(t, 1, src.Pending())

	n := 0
	src.Drain(func(input.Event) { n++ })
	src.Drain(func(input.Event) { n++ })
	assert.Equal(t, 1, n)
	assert.Zero(t, src.Pending())
}

func TestParseStepMode(t *testing.T) {
	m, err := ParseStepMode("Fixed")
	require.NoError(t, err)
	assert.Equal(t, StepFixed, m)

	m, err = ParseStepMode("")
	require.NoError(t, err)
	assert.Equal(t, StepVariable, m)

	_, err = ParseStepMode("adaptive")
	assert.Error(t, err)
	assert.Equal(t, "invalid", StepMode(7).String())
}
