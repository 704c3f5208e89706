package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(1.5, 2), a.Scale(0.5))
	assert.Equal(t, -5.0, a.Dot(b))

	// Value semantics: operands untouched
	assert.Equal(t, V(3, 4), a)
	assert.Equal(t, V(1, -2), b)
}

func TestVec2Length(t *testing.T) {
	v := V(3, 4)
	assert.Equal(t, 25.0, v.LenSq())
	assert.Equal(t, 5.0, v.Len())

	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)

	assert.Equal(t, Zero, Zero.Normalize())
	assert.True(t, Zero.IsZero())
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{math.Inf(1), 0, 1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.x, tt.lo, tt.hi))
	}
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(V(1, 1), V(1+1e-10, 1-1e-10), 1e-9))
	assert.False(t, ApproxEqual(V(1, 1), V(1.1, 1), 1e-3))
}
