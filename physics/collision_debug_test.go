//go:build debug

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/gravity2d/vmath"
)

func TestResolveNonPositiveMassPanics(t *testing.T) {
	half := vmath.V(1, 1)
	a, b := dynamicPair(vmath.V(0, 0), vmath.V(1.5, 0))
	b.Mass = -1

	assert.Panics(t, func() {
		Resolve(a, b, NewAABB(a.Position, half), NewAABB(b.Position, half))
	})
}
