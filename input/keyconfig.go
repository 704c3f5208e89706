package input

import (
	"sort"

	"github.com/pkg/errors"
)

// Action names used by the default bindings
const (
	ActionLeft  = "left"
	ActionRight = "right"
	ActionUp    = "up"
	ActionDown  = "down"
	ActionQuit  = "quit"
)

// Bindings maps action names to the keys that trigger them
// An action is down/pressed/released when any of its keys is
type Bindings map[string][]Key

// DefaultBindings returns WASD + arrow movement and escape to quit
func DefaultBindings() Bindings {
	return Bindings{
		ActionLeft:  {KeyFromRune('a'), KeyLeft},
		ActionRight: {KeyFromRune('d'), KeyRight},
		ActionUp:    {KeyFromRune('w'), KeyUp},
		ActionDown:  {KeyFromRune('s'), KeyDown},
		ActionQuit:  {KeyEscape},
	}
}

// LoadBindings parses action -> key-name lists into sparse overrides on top of base
// Returns error on empty actions or invalid key names
func LoadBindings(base Bindings, raw map[string][]string) (Bindings, error) {
	out := make(Bindings, len(base)+len(raw))
	for action, keys := range base {
		out[action] = append([]Key(nil), keys...)
	}

	// Deterministic error reporting
	actions := make([]string, 0, len(raw))
	for action := range raw {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		names := raw[action]
		if action == "" {
			return nil, errors.New("bindings: empty action name")
		}
		if len(names) == 0 {
			return nil, errors.Errorf("bindings: action %q has no keys", action)
		}
		keys := make([]Key, 0, len(names))
		for _, name := range names {
			k, err := ParseKey(name)
			if err != nil {
				return nil, errors.Wrapf(err, "bindings: action %q", action)
			}
			keys = append(keys, k)
		}
		out[action] = keys
	}
	return out, nil
}

// ActionDown reports whether any key bound to action is held
func (s *State) ActionDown(b Bindings, action string) bool {
	for _, k := range b[action] {
		if s.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// ActionPressed reports whether any key bound to action went down this frame
func (s *State) ActionPressed(b Bindings, action string) bool {
	for _, k := range b[action] {
		if s.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// ActionReleased reports whether any key bound to action went up this frame
func (s *State) ActionReleased(b Bindings, action string) bool {
	for _, k := range b[action] {
		if s.IsKeyReleased(k) {
			return true
		}
	}
	return false
}
