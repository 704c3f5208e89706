package physics

import (
	"github.com/lixenwraith/gravity2d/vmath"
)

// AABB is an axis-aligned bounding box, derived per frame from a center and half-extents
type AABB struct {
	Min, Max vmath.Vec2
}

// NewAABB builds a box centered on c with half-extents h
func NewAABB(c, h vmath.Vec2) AABB {
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// BoxAABB builds a box centered on c with full width and height
func BoxAABB(c vmath.Vec2, width, height float64) AABB {
	return NewAABB(c, vmath.V(width/2, height/2))
}

// Center returns the box midpoint
func (b AABB) Center() vmath.Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns full width and height
func (b AABB) Size() vmath.Vec2 {
	return b.Max.Sub(b.Min)
}

// Intersects reports overlap on both axes; touching edges count, no epsilon
func Intersects(a, b AABB) bool {
	return !(a.Max.X < b.Min.X || a.Min.X > b.Max.X ||
		a.Max.Y < b.Min.Y || a.Min.Y > b.Max.Y)
}

// Axis identifies the separation axis of a contact
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Contact describes one resolved collision
// Normal is the unit separation direction pointing from A toward B
type Contact struct {
	Axis    Axis
	Overlap float64
	Normal  vmath.Vec2
}

// Resolve separates two intersecting bodies along the axis of smaller overlap
// Each non-static body moves half the overlap; the body whose box Min is smaller moves negative.
// Velocities are exchanged with a 1-D impulse only when both bodies are dynamic.
// Disjoint boxes are left untouched and yield a zero Contact.
func Resolve(a, b *Body, ba, bb AABB) Contact {
	overlapX := min(ba.Max.X, bb.Max.X) - max(ba.Min.X, bb.Min.X)
	overlapY := min(ba.Max.Y, bb.Max.Y) - max(ba.Min.Y, bb.Min.Y)
	if overlapX < 0 || overlapY < 0 {
		return Contact{}
	}

	// Y must be strictly smaller to win, so a tie separates along X
	c := Contact{Axis: AxisX, Overlap: overlapX}
	aFirst := ba.Min.X < bb.Min.X
	if overlapY < overlapX {
		c = Contact{Axis: AxisY, Overlap: overlapY}
		aFirst = ba.Min.Y < bb.Min.Y
	}

	// sign is the direction A moves; B moves opposite
	sign := 1.0
	if aFirst {
		sign = -1.0
	}
	c.Normal = axisVec(c.Axis, -sign)

	shift := axisVec(c.Axis, sign*c.Overlap/2)
	if !a.Static {
		a.Position = a.Position.Add(shift)
	}
	if !b.Static {
		b.Position = b.Position.Sub(shift)
	}

	if a.Static || b.Static {
		return c
	}

	assertMass(a, b)
	if a.Mass <= 0 || b.Mass <= 0 {
		return c
	}

	relative := component(a.Velocity, c.Axis) - component(b.Velocity, c.Axis)
	impulse := relative / (1/a.Mass + 1/b.Mass)
	restitution := (a.Restitution + b.Restitution) / 2

	a.Velocity = a.Velocity.Sub(axisVec(c.Axis, impulse*(1+restitution)/a.Mass))
	b.Velocity = b.Velocity.Add(axisVec(c.Axis, impulse*(1+restitution)/b.Mass))
	return c
}

func axisVec(axis Axis, v float64) vmath.Vec2 {
	if axis == AxisX {
		return vmath.V(v, 0)
	}
	return vmath.V(0, v)
}

func component(v vmath.Vec2, axis Axis) float64 {
	if axis == AxisX {
		return v.X
	}
	return v.Y
}
