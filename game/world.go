package game

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/gravity2d/asset"
	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
	"github.com/lixenwraith/gravity2d/vmath"
)

// Layout
const (
	WallThickness    = 20.0
	CollectibleCount = 10
)

// Draw order
const (
	zWall = iota - 1
	zCollectible
	zCrate
	zPlayer
)

var spinnerRunes = [...]rune{'|', '/', '-', '\\'}

// World is the example game stage: a player collecting items among bouncing crates
type World struct {
	scene    *scene.Scene
	textures *asset.Registry
	sounds   Sounds
	logger   *zap.Logger

	width, height float64
	gravity       vmath.Vec2

	collisions bool

	player       *Player
	collectibles []scene.Handle
	score        int
	cleared      bool
}

// Option configures a World
type Option func(*World)

// WithSize sets the world extent in world units
func WithSize(w, h float64) Option {
	return func(wd *World) { wd.width, wd.height = w, h }
}

func WithGravity(g vmath.Vec2) Option {
	return func(w *World) { w.gravity = g }
}

// WithSounds routes game sound effects, silent by default
func WithSounds(s Sounds) Option {
	return func(w *World) {
		if s != nil {
			w.sounds = s
		}
	}
}

// WithTextures shares a texture registry; a private one is created otherwise
func WithTextures(r *asset.Registry) Option {
	return func(w *World) { w.textures = r }
}

// WithCollisions toggles the contact pass between bodies, on by default
func WithCollisions(on bool) Option {
	return func(w *World) { w.collisions = on }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// New builds and populates the world
func New(opts ...Option) *World {
	w := &World{
		sounds:     silent{},
		logger:     zap.NewNop(),
		width:      800,
		height:     600,
		gravity:    vmath.V(0, 500),
		collisions: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.textures == nil {
		w.textures = asset.NewRegistry(w.logger)
	}

	sopts := []scene.Option{scene.WithName("game"), scene.WithZOrder(), scene.WithLogger(w.logger)}
	if w.collisions {
		sopts = append(sopts, scene.WithCollisions())
	}
	w.scene = scene.New(sopts...)
	w.populate()
	return w
}

func (w *World) populate() {
	t := WallThickness
	walls := []*Wall{
		NewWall(vmath.V(t/2, w.height/2), vmath.V(t/2, w.height/2)),
		NewWall(vmath.V(w.width-t/2, w.height/2), vmath.V(t/2, w.height/2)),
		NewWall(vmath.V(w.width/2, w.height-t/2), vmath.V(w.width/2, t/2)),
	}
	for _, wall := range walls {
		wall.SetZIndex(zWall)
		w.scene.Add(wall)
	}

	frames := w.spinnerFrames()
	for i := 0; i < CollectibleCount; i++ {
		pos := vmath.V(100+float64(i%5)*150, 100+float64(i/5)*200)
		c := NewCollectible(pos, frames)
		c.SetZIndex(zCollectible)
		w.collectibles = append(w.collectibles, w.scene.Add(c))
	}

	for _, x := range []float64{150, 300, 650} {
		c := NewCrate(vmath.V(x, 180+x/5), w.gravity, w.Bounds(), w.sounds)
		c.SetZIndex(zCrate)
		w.scene.Add(c)
	}

	w.player = NewPlayer(vmath.V(w.width/2, w.height/2), w.Interior())
	w.player.SetZIndex(zPlayer)
	w.scene.Add(w.player)

	w.logger.Info("world populated",
		zap.Int("entities", w.scene.Len()),
		zap.Int("collectibles", len(w.collectibles)))
}

// spinnerFrames loads the collectible animation through the texture registry
func (w *World) spinnerFrames() []render.Texture {
	frames := make([]render.Texture, len(spinnerRunes))
	for i, r := range spinnerRunes {
		glyph := render.NewGlyph(r, render.Black)
		tex, err := w.textures.Load("spinner/"+string(r), func() (render.Texture, error) {
			return glyph, nil
		})
		if err != nil {
			w.logger.Warn("spinner frame unavailable", zap.Error(err))
			continue
		}
		frames[i] = tex
	}
	return frames
}

// Bind attaches the engine frame context to the scene
func (w *World) Bind(ctx scene.Context) {
	w.scene.Bind(ctx)
}

// Update runs the scene pass, then pickups, then the quit check
func (w *World) Update(dt float64) {
	w.scene.Update(dt)

	pos := w.player.Position()
	remaining := w.collectibles[:0]
	for _, h := range w.collectibles {
		e, ok := w.scene.Get(h)
		if !ok {
			continue
		}
		if e.(*Collectible).CheckCollision(pos, PlayerSize) {
			w.score += CollectibleScore
			w.sounds.PlaySound(SoundPickup)
			w.logger.Info("collected", zap.Int("score", w.score))
			continue
		}
		remaining = append(remaining, h)
	}
	clear(w.collectibles[len(remaining):])
	w.collectibles = remaining

	if len(w.collectibles) == 0 && !w.cleared {
		w.cleared = true
		w.sounds.PlaySound(SoundClear)
		w.logger.Info("all collected", zap.Int("score", w.score))
	}

	if ctx := w.scene.Context(); ctx != nil && ctx.Input().ActionPressed(ctx.Bindings(), input.ActionQuit) {
		ctx.Quit()
	}
}

func (w *World) Render(r render.Renderer) {
	w.scene.Render(r)
}

// Close releases the world's textures
func (w *World) Close() {
	w.textures.UnloadAll()
}

func (w *World) Scene() *scene.Scene {
	return w.scene
}

func (w *World) Player() *Player {
	return w.player
}

func (w *World) Score() int {
	return w.score
}

// Remaining returns the number of uncollected items
func (w *World) Remaining() int {
	return len(w.collectibles)
}

// Bounds is the full world rectangle
func (w *World) Bounds() physics.AABB {
	return physics.AABB{Max: vmath.V(w.width, w.height)}
}

// Interior is the area inside the walls
func (w *World) Interior() physics.AABB {
	return physics.AABB{
		Min: vmath.V(WallThickness, 0),
		Max: vmath.V(w.width-WallThickness, w.height-WallThickness),
	}
}
