package game

import (
	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
	"github.com/lixenwraith/gravity2d/vmath"
)

const (
	CrateSize        = 40.0
	CrateRestitution = 0.4
	// Impacts slower than this stay silent so resting crates do not rattle
	thudSpeed = 60.0
)

var (
	crateColor = render.RGBA(180, 120, 60, 255)
	wallColor  = render.RGBA(90, 90, 110, 255)
)

// Crate falls under gravity and bounces off walls and other bodies
type Crate struct {
	scene.Node
	gravity vmath.Vec2
	bounds  physics.AABB
	sounds  Sounds
}

func NewCrate(pos, gravity vmath.Vec2, bounds physics.AABB, sounds Sounds) *Crate {
	c := &Crate{
		Node:    scene.NewNode("crate", pos),
		gravity: gravity,
		bounds:  bounds,
		sounds:  sounds,
	}
	c.Body = physics.NewBody(pos)
	c.Body.Restitution = CrateRestitution
	c.HalfExtents = vmath.V(CrateSize/2, CrateSize/2)
	return c
}

func (c *Crate) Update(dt float64) {
	physics.ApplyGravity(c.Body, c.gravity)
	physics.Integrate(c.Body, dt)
	physics.ReflectBounds(c.Body, c.HalfExtents, c.bounds)
	c.SyncTransform()
}

func (c *Crate) Render(r render.Renderer) {
	r.DrawRect(render.RectAround(c.Position(), CrateSize, CrateSize), crateColor, true)
}

// OnCollide bounces off static bodies; dynamic pairs already exchanged impulse
func (c *Crate) OnCollide(other scene.Entity, contact physics.Contact) {
	ob := other.Base().Body
	if ob == nil {
		return
	}
	closing := c.Body.Velocity.Dot(contact.Normal)
	if ob.Static && closing > 0 {
		c.Body.Velocity = c.Body.Velocity.Sub(contact.Normal.Scale((1 + c.Body.Restitution) * closing))
	}
	if closing > thudSpeed {
		c.sounds.PlaySound(SoundThud)
	}
}

// Wall is a static box
type Wall struct {
	scene.Node
}

// NewWall creates a static wall centered on pos with half-extents half
func NewWall(pos, half vmath.Vec2) *Wall {
	w := &Wall{Node: scene.NewNode("wall", pos)}
	w.Body = physics.NewStaticBody(pos)
	w.HalfExtents = half
	return w
}

func (w *Wall) Update(float64) {}

func (w *Wall) Render(r render.Renderer) {
	r.DrawRect(render.RectAround(w.Position(), w.HalfExtents.X*2, w.HalfExtents.Y*2), wallColor, true)
}
