package game

import (
	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
	"github.com/lixenwraith/gravity2d/vmath"
)

// Player tuning
const (
	PlayerSize        = 30.0
	PlayerAccel       = 300.0
	PlayerMaxSpeed    = 400.0
	PlayerRestitution = 0.1
)

var playerColor = render.RGBA(100, 255, 100, 255)

// Player is steered by the movement actions and kept inside bounds
type Player struct {
	scene.Node
	bounds physics.AABB
}

// NewPlayer creates a player centered on pos, clamped to bounds
func NewPlayer(pos vmath.Vec2, bounds physics.AABB) *Player {
	p := &Player{Node: scene.NewNode("player", pos), bounds: bounds}
	p.Body = physics.NewBody(pos)
	p.Body.Restitution = PlayerRestitution
	p.HalfExtents = vmath.V(PlayerSize/2, PlayerSize/2)
	return p
}

func (p *Player) Update(dt float64) {
	if ctx := p.context(); ctx != nil {
		p.Body.Acceleration = p.Body.Acceleration.Add(steer(ctx.Input(), ctx.Bindings()))
	}
	physics.Integrate(p.Body, dt)
	physics.CapSpeed(p.Body, PlayerMaxSpeed)
	physics.ClampToBounds(p.Body, p.HalfExtents, p.bounds)
	p.SyncTransform()
}

func (p *Player) Render(r render.Renderer) {
	r.DrawRect(render.RectAround(p.Position(), PlayerSize, PlayerSize), playerColor, true)
}

func (p *Player) context() scene.Context {
	if s := p.Scene(); s != nil {
		return s.Context()
	}
	return nil
}

// steer sums the held movement actions into an acceleration
func steer(in *input.State, b input.Bindings) vmath.Vec2 {
	var acc vmath.Vec2
	if in.ActionDown(b, input.ActionLeft) {
		acc.X -= PlayerAccel
	}
	if in.ActionDown(b, input.ActionRight) {
		acc.X += PlayerAccel
	}
	if in.ActionDown(b, input.ActionUp) {
		acc.Y -= PlayerAccel
	}
	if in.ActionDown(b, input.ActionDown) {
		acc.Y += PlayerAccel
	}
	return acc
}
