package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Terminal draws world-space primitives onto a tcell screen
// World units are mapped to cells by a fixed cell size
type Terminal struct {
	screen       tcell.Screen
	cellW, cellH float64
}

var _ Renderer = (*Terminal)(nil)

// NewTerminal creates a renderer where one cell covers cellW x cellH world units
func NewTerminal(screen tcell.Screen, cellW, cellH float64) *Terminal {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Terminal{screen: screen, cellW: cellW, cellH: cellH}
}

// Screen returns the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// CellToWorld converts a cell coordinate to the world position of the cell center
func (t *Terminal) CellToWorld(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * t.cellW, (float64(y) + 0.5) * t.cellH
}

func (t *Terminal) Clear(c Color) {
	style := tcell.StyleDefault.Background(tcellColor(c))
	w, h := t.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (t *Terminal) DrawRect(r Rect, c Color, filled bool) {
	if c.A == 0 || r.Empty() {
		return
	}
	x0, y0, x1, y1, ok := t.cells(r)
	if !ok {
		return
	}
	if filled {
		style := tcell.StyleDefault.Background(tcellColor(c))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		return
	}

	fg := tcellColor(c)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x != x0 && x != x1 && y != y0 && y != y1 {
				continue
			}
			_, _, st, _ := t.screen.GetContent(x, y)
			t.screen.SetContent(x, y, outlineRune(x, y, x0, y0, x1, y1), nil, st.Foreground(fg))
		}
	}
}

// DrawTexture tiles glyph textures over dst; other texture kinds are not drawable on a terminal
func (t *Terminal) DrawTexture(tex Texture, dst Rect, src *Rect) {
	g, ok := tex.(*Glyph)
	if !ok || g == nil || g.Fg.A == 0 || dst.Empty() {
		return
	}
	x0, y0, x1, y1, ok := t.cells(dst)
	if !ok {
		return
	}
	fg := tcellColor(g.Fg)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			_, _, st, _ := t.screen.GetContent(x, y)
			t.screen.SetContent(x, y, g.Rune, nil, st.Foreground(fg))
		}
	}
}

func (t *Terminal) Present() {
	t.screen.Show()
}

// cells maps a world rect to an inclusive, screen-clipped cell range
// Rects smaller than a cell still cover the cell containing their origin
func (t *Terminal) cells(r Rect) (x0, y0, x1, y1 int, ok bool) {
	w, h := t.screen.Size()
	x0 = int(math.Floor(r.X / t.cellW))
	y0 = int(math.Floor(r.Y / t.cellH))
	x1 = int(math.Ceil((r.X+r.W)/t.cellW)) - 1
	y1 = int(math.Ceil((r.Y+r.H)/t.cellH)) - 1
	x1 = max(x1, x0)
	y1 = max(y1, y0)

	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

func outlineRune(x, y, x0, y0, x1, y1 int) rune {
	switch {
	case x0 == x1 && y0 == y1:
		return '□'
	case (x == x0 || x == x1) && (y == y0 || y == y1):
		return '+'
	case y == y0 || y == y1:
		return '-'
	default:
		return '|'
	}
}

func tcellColor(c Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
