package engine

import "time"

// TimeProvider is the loop's time source
// Readings must be monotonic; dt is derived from successive Now calls
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, which carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
