package engine

import (
	"sync"
	"time"
)

// PausableClock measures game time: real time from a provider minus paused intervals
type PausableClock struct {
	mu     sync.RWMutex
	source TimeProvider

	start       time.Time
	pausedAt    time.Time // Zero when running
	pausedTotal time.Duration
}

// NewPausableClock starts a running clock at the provider's current time
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{source: source, start: source.Now()}
}

// Elapsed returns game time since start, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	now := pc.source.Now()
	if !pc.pausedAt.IsZero() {
		now = pc.pausedAt
	}
	return now.Sub(pc.start) - pc.pausedTotal
}

// Pause freezes game time; a no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = pc.source.Now()
	}
}

// Resume continues game time, adding the pause to the excluded total
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		return
	}
	pc.pausedTotal += pc.source.Now().Sub(pc.pausedAt)
	pc.pausedAt = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return !pc.pausedAt.IsZero()
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedTotal
	if !pc.pausedAt.IsZero() {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
