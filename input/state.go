package input

// KeyState is the per-frame state of a key or button
// Pressed and Released are one-frame edge states collapsed by Update
type KeyState uint8

const (
	Up       KeyState = iota // Default, also implied for codes never seen
	Down                     // Held across frames
	Pressed                  // Went down this frame
	Released                 // Went up this frame
)

var keyStateNames = [...]string{"up", "down", "pressed", "released"}

func (s KeyState) String() string {
	if int(s) < len(keyStateNames) {
		return keyStateNames[s]
	}
	return "invalid"
}

// held reports level state: Pressed counts as held
func (s KeyState) held() bool {
	return s == Down || s == Pressed
}

// State tracks key and button transitions across frames from a raw event stream
// Not safe for concurrent use; owned by the loop goroutine
type State struct {
	keys    map[Key]KeyState
	buttons map[Button]KeyState

	pointerX, pointerY int
}

// NewState creates an empty input state, every code implicitly Up
func NewState() *State {
	return &State{
		keys:    make(map[Key]KeyState),
		buttons: make(map[Button]KeyState),
	}
}

// HandleEvent ingests one device event
// All events of a frame must be handled before that frame's single Update call
func (s *State) HandleEvent(ev Event) {
	switch ev.Type {
	case EventKeyDown:
		press(s.keys, ev.Key)
	case EventKeyUp:
		s.keys[ev.Key] = Released
	case EventButtonDown:
		press(s.buttons, ev.Button)
		s.pointerX, s.pointerY = ev.X, ev.Y
	case EventButtonUp:
		s.buttons[ev.Button] = Released
		s.pointerX, s.pointerY = ev.X, ev.Y
	case EventPointerMove:
		s.pointerX, s.pointerY = ev.X, ev.Y
	case EventFocusLost:
		s.Reset()
	}
}

// press sets the Pressed edge unless already Down, so OS key repeat never re-triggers it
func press[C comparable](m map[C]KeyState, code C) {
	if m[code] != Down {
		m[code] = Pressed
	}
}

// Update ages edge states: Pressed -> Down, Released -> Up
// Called once per frame; afterwards no code is left in an edge state
func (s *State) Update() {
	age(s.keys)
	age(s.buttons)
}

func age[C comparable](m map[C]KeyState) {
	for code, st := range m {
		switch st {
		case Pressed:
			m[code] = Down
		case Released:
			m[code] = Up
		}
	}
}

// Reset forgets all key, button and pointer state
func (s *State) Reset() {
	clear(s.keys)
	clear(s.buttons)
	s.pointerX, s.pointerY = 0, 0
}

// KeyState returns the current state of a key, Up when never seen
func (s *State) KeyState(k Key) KeyState {
	return s.keys[k]
}

// IsKeyDown reports whether the key is held, including its Pressed frame
func (s *State) IsKeyDown(k Key) bool {
	return s.keys[k].held()
}

// IsKeyPressed reports the down edge, true for exactly one frame
func (s *State) IsKeyPressed(k Key) bool {
	return s.keys[k] == Pressed
}

// IsKeyReleased reports the up edge, true for exactly one frame
func (s *State) IsKeyReleased(k Key) bool {
	return s.keys[k] == Released
}

// ButtonState returns the current state of a pointer button, Up when never seen
func (s *State) ButtonState(b Button) KeyState {
	return s.buttons[b]
}

// IsButtonDown reports whether the button is held, including its Pressed frame
func (s *State) IsButtonDown(b Button) bool {
	return s.buttons[b].held()
}

// IsButtonPressed reports the button down edge
func (s *State) IsButtonPressed(b Button) bool {
	return s.buttons[b] == Pressed
}

// IsButtonReleased reports the button up edge
func (s *State) IsButtonReleased(b Button) bool {
	return s.buttons[b] == Released
}

// Pointer returns the last absolute pointer coordinates
func (s *State) Pointer() (x, y int) {
	return s.pointerX, s.pointerY
}
