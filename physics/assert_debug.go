//go:build debug

package physics

import "fmt"

func assertMass(a, b *Body) {
	if a.Mass <= 0 || b.Mass <= 0 {
		panic(fmt.Sprintf("physics: two-body resolution requires positive mass, got %g and %g", a.Mass, b.Mass))
	}
}
