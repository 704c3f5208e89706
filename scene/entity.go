package scene

import (
	"time"

	"github.com/lixenwraith/gravity2d/input"
	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/render"
)

// Entity is the extension point for simulation objects
// Embed Node to get Base and the transform/active state
type Entity interface {
	Update(dt float64)
	Render(r render.Renderer)
	Base() *Node
}

// Collider receives contact notifications from the scene's contact pass
// Contact normal points from the receiver toward other
type Collider interface {
	OnCollide(other Entity, c physics.Contact)
}

// Starter is called once when the entity joins a scene, after its back-reference is bound
type Starter interface {
	Start()
}

// Context is the frame context a scene exposes to its entities
// Owned by the loop driver; the scene keeps a non-owning reference
type Context interface {
	Input() *input.State
	Bindings() input.Bindings
	Renderer() render.Renderer
	Elapsed() time.Duration
	Quit()
}
