package physics

import (
	"github.com/lixenwraith/gravity2d/vmath"
)

// Body is the per-entity rigid body state
// Acceleration is frame-local: it is reset to zero at the end of every Integrate
type Body struct {
	Position     vmath.Vec2
	Velocity     vmath.Vec2
	Acceleration vmath.Vec2
	Mass         float64 // > 0 for dynamic bodies taking part in impulse exchange
	Restitution  float64 // [0,1], 0 = fully inelastic
	Static       bool    // Never moved by integration or collision response
}

// Default body parameters
const (
	DefaultMass        = 1.0
	DefaultRestitution = 0.5
)

// NewBody creates a dynamic body at pos with default mass and restitution
func NewBody(pos vmath.Vec2) *Body {
	return &Body{
		Position:    pos,
		Mass:        DefaultMass,
		Restitution: DefaultRestitution,
	}
}

// NewStaticBody creates an immovable body at pos
func NewStaticBody(pos vmath.Vec2) *Body {
	b := NewBody(pos)
	b.Static = true
	return b
}

// Integrate performs semi-implicit Euler: v += a*dt; p += v*dt; a = 0
// dt is in seconds and is not clamped here
func Integrate(b *Body, dt float64) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Acceleration = vmath.Zero
}

// ApplyGravity accumulates g into acceleration; must be re-applied every frame
func ApplyGravity(b *Body, g vmath.Vec2) {
	if b.Static {
		return
	}
	b.Acceleration = b.Acceleration.Add(g)
}

// ApplyForce accumulates f/mass into acceleration
func ApplyForce(b *Body, f vmath.Vec2) {
	if b.Static || b.Mass <= 0 {
		return
	}
	b.Acceleration = b.Acceleration.Add(f.Scale(1 / b.Mass))
}

// ApplyImpulse adds j/mass to velocity (momentum transfer)
func ApplyImpulse(b *Body, j vmath.Vec2) {
	if b.Static || b.Mass <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(j.Scale(1 / b.Mass))
}
