package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// OpenScreen initializes the terminal screen with mouse reporting and a hidden cursor
// The caller must Fini the screen to restore the terminal
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "terminal: create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "terminal: init screen")
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}
