package engine

import (
	"sync"

	"github.com/lixenwraith/gravity2d/input"
)

// EventSource supplies raw device events to the loop
// Drain delivers every pending event to fn without blocking and returns
type EventSource interface {
	Drain(fn func(input.Event))
}

// SliceSource is a scripted source; each Drain delivers the next frame's batch
type SliceSource struct {
	mu     sync.Mutex
	frames [][]input.Event
}

// NewSliceSource creates a source replaying one batch per frame
func NewSliceSource(frames ...[]input.Event) *SliceSource {
	return &SliceSource{frames: frames}
}

// Push appends a batch for a later frame
func (s *SliceSource) Push(events ...input.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, events)
}

// Pending returns the number of batches not yet drained
func (s *SliceSource) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *SliceSource) Drain(fn func(input.Event)) {
	s.mu.Lock()
	if len(s.frames) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.frames[0]
	s.frames = s.frames[1:]
	s.mu.Unlock()

	for _, ev := range batch {
		fn(ev)
	}
}

// ChannelSource drains a buffered channel fed by a poller goroutine
type ChannelSource struct {
	ch chan input.Event
}

// NewChannelSource creates a source with the given buffer size
func NewChannelSource(size int) *ChannelSource {
	return &ChannelSource{ch: make(chan input.Event, size)}
}

// Send queues ev, dropping it when the buffer is full; reports whether it was queued
func (s *ChannelSource) Send(ev input.Event) bool {
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Chan exposes the channel for blocking producers
func (s *ChannelSource) Chan() chan<- input.Event {
	return s.ch
}

func (s *ChannelSource) Drain(fn func(input.Event)) {
	for {
		select {
		case ev := <-s.ch:
			fn(ev)
		default:
			return
		}
	}
}
