package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gravity2d/input"
)

// namedKeys maps tcell special keys to engine keys
// Ctrl+letter combinations are absent: only the quit chords are recognized
var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyDelete:     input.KeyDelete,

	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
	tcell.KeyHome:   input.KeyHome,
	tcell.KeyEnd:    input.KeyEnd,
	tcell.KeyPgUp:   input.KeyPageUp,
	tcell.KeyPgDn:   input.KeyPageDown,
	tcell.KeyInsert: input.KeyInsert,

	tcell.KeyF1:  input.KeyF1,
	tcell.KeyF2:  input.KeyF2,
	tcell.KeyF3:  input.KeyF3,
	tcell.KeyF4:  input.KeyF4,
	tcell.KeyF5:  input.KeyF5,
	tcell.KeyF6:  input.KeyF6,
	tcell.KeyF7:  input.KeyF7,
	tcell.KeyF8:  input.KeyF8,
	tcell.KeyF9:  input.KeyF9,
	tcell.KeyF10: input.KeyF10,
	tcell.KeyF11: input.KeyF11,
	tcell.KeyF12: input.KeyF12,
}

// quitKeys end the loop regardless of game bindings
var quitKeys = map[tcell.Key]bool{
	tcell.KeyCtrlC: true,
	tcell.KeyCtrlQ: true,
}

// mouseButtons is the diffed subset of tcell button masks
var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button input.Button
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button3, input.ButtonMiddle},
	{tcell.Button2, input.ButtonRight},
}

// mapKey converts a tcell key event; ok is false for keys the engine does not track
func mapKey(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		return input.KeyFromRune(ev.Rune()), true
	}
	k, ok := namedKeys[ev.Key()]
	return k, ok
}

// isQuitChord matches Ctrl+C and Ctrl+Q in both legacy control-key and rune+modifier forms
func isQuitChord(ev *tcell.EventKey) bool {
	if quitKeys[ev.Key()] {
		return true
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		r := unicode.ToLower(ev.Rune())
		return r == 'c' || r == 'q'
	}
	return false
}
