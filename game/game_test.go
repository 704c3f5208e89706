package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gravity2d/asset"
	"github.com/lixenwraith/gravity2d/engine"
	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
	"github.com/lixenwraith/gravity2d/vmath"
)

type fakeContext struct {
	in   *input.State
	rec  *render.Recorder
	quit int
}

func newFakeContext() *fakeContext {
	return &fakeContext{in: input.NewState(), rec: render.NewRecorder()}
}

func (f *fakeContext) Input() *input.State       { return f.in }
func (f *fakeContext) Bindings() input.Bindings  { return input.DefaultBindings() }
func (f *fakeContext) Renderer() render.Renderer { return f.rec }
func (f *fakeContext) Elapsed() time.Duration    { return 0 }
func (f *fakeContext) Quit()                     { f.quit++ }

type recordingSounds struct {
	played []string
}

func (r *recordingSounds) PlaySound(name string) {
	r.played = append(r.played, name)
}

func newWorld(t *testing.T, opts ...Option) (*World, *fakeContext, *recordingSounds) {
	t.Helper()
	sounds := &recordingSounds{}
	w := New(append([]Option{WithSounds(sounds)}, opts...)...)
	t.Cleanup(w.Close)
	ctx := newFakeContext()
	w.Bind(ctx)
	return w, ctx, sounds
}

func TestWorldPopulation(t *testing.T) {
	w, _, _ := newWorld(t)

	// 3 walls, 10 collectibles, 3 crates, 1 player
	assert.Equal(t, 17, w.Scene().Len())
	assert.Equal(t, CollectibleCount, w.Remaining())
	assert.Equal(t, vmath.V(400, 300), w.Player().Position())
}

func TestPlayerAcceleratesWithBindings(t *testing.T) {
	w, ctx, _ := newWorld(t)

	ctx.in.HandleEvent(input.KeyDownEvent(input.KeyRight))
	w.Update(0.1)

	p := w.Player()
	assert.InDelta(t, 30, p.Body.Velocity.X, 1e-9)
	assert.InDelta(t, 403, p.Position().X, 1e-9)
	assert.InDelta(t, 300, p.Position().Y, 1e-9)
	assert.Equal(t, p.Position(), p.Transform.Position)
	assert.True(t, p.Body.Acceleration.IsZero(), "acceleration is frame-local")

	// Second binding for the same action
	ctx.in.Update()
	ctx.in.HandleEvent(input.KeyUpEvent(input.KeyRight))
	ctx.in.HandleEvent(input.KeyDownEvent(input.KeyFromRune('w')))
	w.Update(0.1)
	assert.InDelta(t, -30, p.Body.Velocity.Y, 1e-9)
}

func TestPlayerClampedInsideWalls(t *testing.T) {
	w, _, _ := newWorld(t)
	p := w.Player()

	p.SetPosition(vmath.V(-50, 300))
	p.Body.Velocity = vmath.V(-100, 0)
	w.Update(1.0 / 60)

	assert.Equal(t, WallThickness+PlayerSize/2, p.Position().X)
	assert.Zero(t, p.Body.Velocity.X)
}

func TestCollectibleSpins(t *testing.T) {
	c := NewCollectible(vmath.V(0, 0), nil)

	c.Update(1)
	assert.InDelta(t, 180, c.Transform.Rotation, 1e-9)

	c.Update(1.5)
	assert.InDelta(t, 90, c.Transform.Rotation, 1e-9)
}

func TestCollectibleCheckCollision(t *testing.T) {
	w, _, _ := newWorld(t)
	h := w.collectibles[0]
	e, ok := w.Scene().Get(h)
	require.True(t, ok)
	c := e.(*Collectible)

	assert.False(t, c.CheckCollision(vmath.V(100+22.5, 100), PlayerSize), "touching distance does not collect")
	assert.True(t, c.CheckCollision(vmath.V(110, 100), PlayerSize))
	assert.False(t, c.Active())
	assert.False(t, c.CheckCollision(vmath.V(100, 100), PlayerSize), "collects once")
}

func TestPickupScoresAndRemoves(t *testing.T) {
	w, _, sounds := newWorld(t)

	// The player spawns on top of the center item
	w.Update(0)
	assert.Equal(t, 10, w.Score())
	assert.Equal(t, CollectibleCount-1, w.Remaining())
	assert.Equal(t, []string{SoundPickup}, sounds.played)

	w.Player().SetPosition(vmath.V(100, 100))
	w.Update(0)
	assert.Equal(t, 20, w.Score())

	// Compaction on the next pass drops both collected items
	w.Update(0)
	assert.Equal(t, 15, w.Scene().Len())
}

func TestClearingAllItems(t *testing.T) {
	w, _, sounds := newWorld(t, WithCollisions(false))

	for i := 0; i < CollectibleCount; i++ {
		w.Player().SetPosition(vmath.V(100+float64(i%5)*150, 100+float64(i/5)*200))
		w.Update(0)
	}
	assert.Zero(t, w.Remaining())
	assert.Equal(t, CollectibleCount*CollectibleScore, w.Score())
	assert.Equal(t, SoundClear, sounds.played[len(sounds.played)-1])

	w.Update(0)
	assert.Len(t, sounds.played, CollectibleCount+1, "clear cue plays once")
}

func TestEscapeQuits(t *testing.T) {
	w, ctx, _ := newWorld(t)

	w.Update(0)
	assert.Zero(t, ctx.quit)

	ctx.in.HandleEvent(input.KeyDownEvent(input.KeyEscape))
	w.Update(0)
	assert.Equal(t, 1, ctx.quit)

	// Held escape is not a new press
	ctx.in.Update()
	w.Update(0)
	assert.Equal(t, 1, ctx.quit)
}

func TestCratesSettleOnFloor(t *testing.T) {
	w, _, sounds := newWorld(t)

	for i := 0; i < 600; i++ {
		w.Update(1.0 / 60)
	}

	floor := w.Interior().Max.Y - CrateSize/2
	crates := 0
	w.Scene().Each(func(_ scene.Handle, e scene.Entity) bool {
		if c, ok := e.(*Crate); ok {
			crates++
			assert.InDelta(t, floor, c.Position().Y, 2)
			assert.Less(t, c.Body.Velocity.Len(), 20.0)
		}
		return true
	})
	assert.Equal(t, 3, crates)
	assert.Contains(t, sounds.played, SoundThud)
}

func TestCratesFallThroughWithoutCollisions(t *testing.T) {
	w, _, _ := newWorld(t, WithCollisions(false))

	for i := 0; i < 600; i++ {
		w.Update(1.0 / 60)
	}
	// Only the world bounds stop them
	w.Scene().Each(func(_ scene.Handle, e scene.Entity) bool {
		if c, ok := e.(*Crate); ok {
			assert.Greater(t, c.Position().Y, w.Interior().Max.Y-CrateSize/2)
		}
		return true
	})
}

func TestRenderOrder(t *testing.T) {
	w, _, _ := newWorld(t)
	rec := render.NewRecorder()

	w.Update(0)
	w.Render(rec)
	rec.Present()

	// One item was collected on the first pass
	assert.Equal(t, 3+9+3+1, rec.Count(render.OpRect))
	assert.Equal(t, 9, rec.Count(render.OpTexture))

	ops := rec.LastFrame()
	assert.Equal(t, wallColor, ops[0].Color)
	assert.Equal(t, playerColor, ops[len(ops)-2].Color)
}

func TestSharedTextureRegistry(t *testing.T) {
	reg := asset.NewRegistry(nil)
	w, _, _ := newWorld(t, WithTextures(reg))

	assert.Equal(t, len(spinnerRunes), reg.Len())
	assert.NotNil(t, reg.Get("spinner/|"))

	w.Close()
	assert.Zero(t, reg.Len())
}

func TestRunsUnderEngine(t *testing.T) {
	clock := engine.NewManualClock(time.Unix(1000, 0))
	src := engine.NewSliceSource()
	rec := render.NewRecorder()
	w := New()
	defer w.Close()

	eng, err := engine.New(w, rec, src, engine.WithTimeProvider(clock))
	require.NoError(t, err)

	src.Push(input.KeyDownEvent(input.KeyRight))
	clock.Advance(100 * time.Millisecond)
	require.True(t, eng.Step())
	assert.InDelta(t, 403, w.Player().Position().X, 1e-9)
	assert.Equal(t, 10, w.Score())

	src.Push(input.KeyDownEvent(input.KeyEscape))
	clock.Advance(16 * time.Millisecond)
	assert.False(t, eng.Step())
	assert.True(t, eng.Quitting())
	assert.Equal(t, 2, rec.Frames())
}
