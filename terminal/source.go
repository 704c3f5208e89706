package terminal

import (
	"context"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/gravity2d/engine"
	"github.com/lixenwraith/gravity2d/input"
)

const (
	// DefaultReleaseTimeout outlasts the usual OS delay before key repeat starts (500-660ms)
	DefaultReleaseTimeout = 700 * time.Millisecond
	defaultBuffer         = 256
)

// Source turns tcell screen events into engine input events
// Run polls on its own goroutine; Drain is called by the loop goroutine.
// Terminals report key presses only, so key-up is synthesized once a key
// has not been repeated for the release timeout.
type Source struct {
	screen   tcell.Screen
	queue    *engine.ChannelSource
	release  time.Duration
	provider engine.TimeProvider
	logger   *zap.Logger

	// Poller goroutine state
	buttons tcell.ButtonMask
	px, py  int

	// Loop goroutine state
	held map[input.Key]time.Time
}

var _ engine.EventSource = (*Source)(nil)

// Option configures a Source
type Option func(*Source)

// WithReleaseTimeout sets how long a key stays down without repeats; values <= 0 keep the default
func WithReleaseTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.release = d
		}
	}
}

// WithTimeProvider replaces the clock used for key-up synthesis
func WithTimeProvider(tp engine.TimeProvider) Option {
	return func(s *Source) { s.provider = tp }
}

// WithBuffer sets the event queue size
func WithBuffer(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.queue = engine.NewChannelSource(n)
		}
	}
}

// WithLogger sets the source logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSource creates a source reading from screen
func NewSource(screen tcell.Screen, opts ...Option) *Source {
	s := &Source{
		screen:   screen,
		queue:    engine.NewChannelSource(defaultBuffer),
		release:  DefaultReleaseTimeout,
		provider: engine.NewMonotonicTimeProvider(),
		logger:   zap.NewNop(),
		held:     make(map[input.Key]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run forwards screen events until ctx is done or the screen is finalized
func (s *Source) Run(ctx context.Context) error {
	events := make(chan tcell.Event, defaultBuffer)
	go s.screen.ChannelEvents(events, ctx.Done())

	out := s.queue.Chan()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for _, e := range s.translate(ev) {
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// Drain delivers queued events, then synthesized key-ups for keys past the release timeout
func (s *Source) Drain(fn func(input.Event)) {
	now := s.provider.Now()
	s.queue.Drain(func(ev input.Event) {
		switch ev.Type {
		case input.EventKeyDown:
			s.held[ev.Key] = now
		case input.EventKeyUp:
			delete(s.held, ev.Key)
		case input.EventFocusLost:
			clear(s.held)
		}
		fn(ev)
	})

	var expired []input.Key
	for k, seen := range s.held {
		if now.Sub(seen) >= s.release {
			expired = append(expired, k)
		}
	}
	slices.Sort(expired)
	for _, k := range expired {
		delete(s.held, k)
		fn(input.KeyUpEvent(k))
	}
}

// translate maps one tcell event to zero or more engine events; poller goroutine only
func (s *Source) translate(ev tcell.Event) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitChord(ev) {
			return []input.Event{input.Quit()}
		}
		k, ok := mapKey(ev)
		if !ok {
			s.logger.Debug("unmapped key", zap.String("name", ev.Name()))
			return nil
		}
		return []input.Event{input.KeyDownEvent(k)}

	case *tcell.EventMouse:
		return s.translateMouse(ev)

	case *tcell.EventFocus:
		if ev.Focused {
			return nil
		}
		return []input.Event{input.FocusLost()}

	case *tcell.EventResize:
		s.screen.Sync()
		w, h := ev.Size()
		return []input.Event{{Type: input.EventResize, X: w, Y: h}}
	}
	return nil
}

// translateMouse diffs the button mask against the previous report
func (s *Source) translateMouse(ev *tcell.EventMouse) []input.Event {
	x, y := ev.Position()
	now := ev.Buttons()

	var out []input.Event
	if x != s.px || y != s.py {
		out = append(out, input.PointerMove(x, y))
		s.px, s.py = x, y
	}
	for _, mb := range mouseButtons {
		was, is := s.buttons&mb.mask != 0, now&mb.mask != 0
		switch {
		case is && !was:
			out = append(out, input.ButtonDown(mb.button, x, y))
		case was && !is:
			out = append(out, input.ButtonUp(mb.button, x, y))
		}
	}
	s.buttons = now
	return out
}
