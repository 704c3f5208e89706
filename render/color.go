package render

import "github.com/lixenwraith/gravity2d/vmath"

// Color stores explicit 8-bit RGBA channels
type Color struct {
	R, G, B, A uint8
}

// RGBA is shorthand for Color{r, g, b, a}
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Predefined colors
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst Color) Blend(src Color, alpha float64) Color {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return Color{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
		A: dst.A,
	}
}

// Rect is a world-space rectangle, X/Y at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the rect of size (w, h) centered on c
func RectAround(c vmath.Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Empty reports a rect with no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
