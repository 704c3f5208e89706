package physics

import (
	"github.com/lixenwraith/gravity2d/vmath"
)

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(b *Body, maxSpeed float64) bool {
	magSq := b.Velocity.LenSq()
	if magSq <= maxSpeed*maxSpeed || magSq == 0 {
		return false
	}
	b.Velocity = b.Velocity.Normalize().Scale(maxSpeed)
	return true
}

// ClampToBounds keeps a box with half-extents h inside bounds
// Velocity on a clamped axis is zeroed; returns true if any clamp occurred
func ClampToBounds(b *Body, h vmath.Vec2, bounds AABB) bool {
	if b.Static {
		return false
	}
	clamped := false

	lo, hi := bounds.Min.X+h.X, bounds.Max.X-h.X
	if x := vmath.Clamp(b.Position.X, lo, hi); x != b.Position.X {
		b.Position.X = x
		b.Velocity.X = 0
		clamped = true
	}

	lo, hi = bounds.Min.Y+h.Y, bounds.Max.Y-h.Y
	if y := vmath.Clamp(b.Position.Y, lo, hi); y != b.Position.Y {
		b.Position.Y = y
		b.Velocity.Y = 0
		clamped = true
	}
	return clamped
}

// ReflectBounds bounces a box off the inside of bounds, scaling the reflected
// velocity by the body's restitution; returns true if any reflection occurred
func ReflectBounds(b *Body, h vmath.Vec2, bounds AABB) bool {
	if b.Static {
		return false
	}
	reflected := false

	if b.Position.X-h.X < bounds.Min.X {
		b.Position.X = bounds.Min.X + h.X
		b.Velocity.X = -b.Velocity.X * b.Restitution
		reflected = true
	} else if b.Position.X+h.X > bounds.Max.X {
		b.Position.X = bounds.Max.X - h.X
		b.Velocity.X = -b.Velocity.X * b.Restitution
		reflected = true
	}

	if b.Position.Y-h.Y < bounds.Min.Y {
		b.Position.Y = bounds.Min.Y + h.Y
		b.Velocity.Y = -b.Velocity.Y * b.Restitution
		reflected = true
	} else if b.Position.Y+h.Y > bounds.Max.Y {
		b.Position.Y = bounds.Max.Y - h.Y
		b.Velocity.Y = -b.Velocity.Y * b.Restitution
		reflected = true
	}
	return reflected
}
