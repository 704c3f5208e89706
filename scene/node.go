package scene

import (
	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/vmath"
)

// Transform is the placement of an entity in world space
// Rotation is in degrees; Scale multiplies the nominal size
type Transform struct {
	Position vmath.Vec2
	Rotation float64
	Scale    vmath.Vec2
}

// Node is the shared entity state; concrete entities embed it
// Body is optional; entities without one are not part of the contact pass
type Node struct {
	Transform   Transform
	Body        *physics.Body
	HalfExtents vmath.Vec2
	Name        string

	active bool
	z      int
	scene  *Scene
	handle Handle
}

// NewNode creates a node at pos with unit scale
func NewNode(name string, pos vmath.Vec2) Node {
	return Node{
		Name:      name,
		Transform: Transform{Position: pos, Scale: vmath.V(1, 1)},
	}
}

// Base returns the node itself, satisfying Entity for embedding types
func (n *Node) Base() *Node {
	return n
}

// Position returns the body position when the node simulates physics
func (n *Node) Position() vmath.Vec2 {
	if n.Body != nil {
		return n.Body.Position
	}
	return n.Transform.Position
}

// SetPosition moves the node and its body
func (n *Node) SetPosition(p vmath.Vec2) {
	n.Transform.Position = p
	if n.Body != nil {
		n.Body.Position = p
	}
}

// SyncTransform copies the body position into the transform
func (n *Node) SyncTransform() {
	if n.Body != nil {
		n.Transform.Position = n.Body.Position
	}
}

// AABB returns the collision box around the current position
func (n *Node) AABB() physics.AABB {
	return physics.NewAABB(n.Position(), n.HalfExtents)
}

// Active reports whether the node is live in a scene and not pending removal
func (n *Node) Active() bool {
	return n.active
}

// Destroy marks the node for removal; the scene drops it after the current update pass
func (n *Node) Destroy() {
	n.active = false
}

// ZIndex returns the draw and dispatch order key used by z-ordered scenes
func (n *Node) ZIndex() int {
	return n.z
}

// SetZIndex changes the order key; a z-ordered scene re-sorts before its next pass
func (n *Node) SetZIndex(z int) {
	if n.z == z {
		return
	}
	n.z = z
	if n.scene != nil {
		n.scene.orderDirty = true
	}
}

// Scene returns the owning scene, nil before Add and after removal
func (n *Node) Scene() *Scene {
	return n.scene
}

// Handle returns the entity's handle in its scene
func (n *Node) Handle() Handle {
	return n.handle
}
