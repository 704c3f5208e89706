package render

// Glyph is a character-cell texture: a rune tiled over the destination rect
type Glyph struct {
	Rune rune
	Fg   Color
	W, H int // Nominal pixel size reported to layout code
}

var _ Texture = (*Glyph)(nil)

// NewGlyph creates a glyph texture with a 1x1 nominal size
func NewGlyph(r rune, fg Color) *Glyph {
	return &Glyph{Rune: r, Fg: fg, W: 1, H: 1}
}

func (g *Glyph) Size() (w, h int) {
	return g.W, g.H
}
