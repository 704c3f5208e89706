//go:build !debug

package physics

// assertMass is a no-op in release builds; Resolve skips velocity exchange instead
func assertMass(a, b *Body) {}
