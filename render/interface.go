package render

// Renderer is the drawing collaborator consumed by the simulation
// No return value is consulted by the core
type Renderer interface {
	Clear(c Color)
	DrawRect(r Rect, c Color, filled bool)
	// DrawTexture draws tex into dst; src selects a sub-region, nil = whole texture
	// A nil texture draws nothing
	DrawTexture(tex Texture, dst Rect, src *Rect)
	Present()
}

// Texture is an opaque drawable handle owned by an asset collaborator
type Texture interface {
	Size() (w, h int)
}
