package game

import (
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/scene"
	"github.com/lixenwraith/gravity2d/vmath"
)

const (
	CollectibleSize  = 15.0
	CollectibleScore = 10
	SpinRate         = 180.0 // Degrees per second
)

var collectibleColor = render.RGBA(255, 255, 100, 255)

// Collectible spins in place until the player touches it
type Collectible struct {
	scene.Node
	frames []render.Texture // Spinner frames indexed by rotation quadrant, entries may be nil
}

func NewCollectible(pos vmath.Vec2, frames []render.Texture) *Collectible {
	return &Collectible{Node: scene.NewNode("collectible", pos), frames: frames}
}

func (c *Collectible) Update(dt float64) {
	c.Transform.Rotation += SpinRate * dt
	if c.Transform.Rotation > 360 {
		c.Transform.Rotation -= 360
	}
}

func (c *Collectible) Render(r render.Renderer) {
	dst := render.RectAround(c.Position(), CollectibleSize, CollectibleSize)
	r.DrawRect(dst, collectibleColor, true)
	if len(c.frames) > 0 {
		i := int(c.Transform.Rotation/90) % len(c.frames)
		r.DrawTexture(c.frames[i], dst, nil)
	}
}

// CheckCollision collects the item when a player of playerSize at playerPos overlaps it
// Returns true only on the collecting call
func (c *Collectible) CheckCollision(playerPos vmath.Vec2, playerSize float64) bool {
	if !c.Active() {
		return false
	}
	if c.Position().Sub(playerPos).Len() >= (CollectibleSize+playerSize)/2 {
		return false
	}
	c.Destroy()
	return true
}
