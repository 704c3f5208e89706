package input

// EventType classifies a raw device event
type EventType uint8

const (
	EventNone EventType = iota
	EventKeyDown
	EventKeyUp
	EventButtonDown
	EventButtonUp
	EventPointerMove
	EventResize
	EventQuit
	EventFocusLost
)

var eventTypeNames = [...]string{
	EventNone:        "none",
	EventKeyDown:     "key_down",
	EventKeyUp:       "key_up",
	EventButtonDown:  "button_down",
	EventButtonUp:    "button_up",
	EventPointerMove: "pointer_move",
	EventResize:      "resize",
	EventQuit:        "quit",
	EventFocusLost:   "focus_lost",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is one discrete device event supplied by an event source
// Key is set for key events, Button for button events, X/Y for pointer and resize events
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	X, Y   int
}

// KeyDownEvent builds a key-down event
func KeyDownEvent(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// KeyUpEvent builds a key-up event
func KeyUpEvent(k Key) Event { return Event{Type: EventKeyUp, Key: k} }

// ButtonDown builds a button-down event at the pointer position
func ButtonDown(b Button, x, y int) Event {
	return Event{Type: EventButtonDown, Button: b, X: x, Y: y}
}

// ButtonUp builds a button-up event at the pointer position
func ButtonUp(b Button, x, y int) Event {
	return Event{Type: EventButtonUp, Button: b, X: x, Y: y}
}

// PointerMove builds a pointer-move event with absolute coordinates
func PointerMove(x, y int) Event { return Event{Type: EventPointerMove, X: x, Y: y} }

// Quit builds a quit event
func Quit() Event { return Event{Type: EventQuit} }

// FocusLost builds a focus-loss event; held keys and buttons are forgotten
func FocusLost() Event { return Event{Type: EventFocusLost} }
