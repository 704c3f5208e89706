package engine

import (
	"sync"
	"time"
)

// ManualClock is a TimeProvider that moves only when told to
// It drives an Engine deterministically: headless runs, replays, and tests in packages that
// embed the loop. Readings never go backwards, matching the TimeProvider contract.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock reading start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to t; a t before the current reading is refused and reported false
func (c *ManualClock) Set(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Before(c.now) {
		return false
	}
	c.now = t
	return true
}

// Advance moves the clock forward by d and returns the new reading; negative d is ignored
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return c.now
}
