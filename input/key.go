package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Key identifies a keyboard key
// Printable keys use their lower-case rune value, named keys live above the Unicode range
type Key int32

const (
	KeyNone      Key = 0
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = ' '
	KeyDelete    Key = 0x7F
)

// Named keys without a rune value
const (
	KeyUp Key = unicode.MaxRune + 1 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Button identifies a pointer button, numbered like SDL (left = 1)
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// KeyFromRune returns the key for a printable rune, folding case so Shift+A and a share state
func KeyFromRune(r rune) Key {
	return Key(unicode.ToLower(r))
}

// keyToName maps named keys to canonical config names
var keyToName = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse of keyToName plus aliases
var nameToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyToName)+2)
	for k, n := range keyToName {
		m[n] = k
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	return m
}()

// KeyName returns the canonical config name of a key
func KeyName(k Key) string {
	if n, ok := keyToName[k]; ok {
		return n
	}
	if k > KeyNone && k <= unicode.MaxRune && unicode.IsPrint(rune(k)) {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

func (k Key) String() string { return KeyName(k) }

// ParseKey resolves a config key name: a named key or a single printable character
func ParseKey(name string) (Key, error) {
	if k, ok := nameToKey[strings.ToLower(name)]; ok {
		return k, nil
	}
	runes := []rune(name)
	if len(runes) == 1 && unicode.IsPrint(runes[0]) {
		return KeyFromRune(runes[0]), nil
	}
	return KeyNone, errors.Errorf("unknown key name %q", name)
}
