package physics

import (
	"github.com/lixenwraith/gravity2d/vmath"
)

// Shape pairs a body with the half-extents of its collision box
type Shape struct {
	Body        *Body
	HalfExtents vmath.Vec2
}

// AABB derives the current box from the body position
func (s Shape) AABB() AABB {
	return NewAABB(s.Body.Position, s.HalfExtents)
}

// ResolvePairs runs the O(n²) pairwise pass in slice order
// Boxes are re-derived per pair so earlier corrections are seen by later pairs.
// Static-static pairs are skipped. onContact may be nil. Returns the contact count.
func ResolvePairs(shapes []Shape, onContact func(i, j int, c Contact)) int {
	contacts := 0
	for i := 0; i < len(shapes); i++ {
		a := shapes[i]
		if a.Body == nil {
			continue
		}
		for j := i + 1; j < len(shapes); j++ {
			b := shapes[j]
			if b.Body == nil || (a.Body.Static && b.Body.Static) {
				continue
			}
			ba, bb := a.AABB(), b.AABB()
			if !Intersects(ba, bb) {
				continue
			}
			c := Resolve(a.Body, b.Body, ba, bb)
			contacts++
			if onContact != nil {
				onContact(i, j, c)
			}
		}
	}
	return contacts
}
