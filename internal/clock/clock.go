// Package clock provides the time source used for room deadline checks.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant. Successive calls never go backwards.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the wall clock, clamped so it never decreases
type System struct {
	mu   sync.Mutex
	last time.Time
}

// NewSystem creates a System clock
func NewSystem() *System {
	return &System{}
}

// Now returns the current time, or the last returned time if the wall clock stepped back
func (s *System) Now() time.Time {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.last) {
		return s.last
	}
	s.last = now
	return now
}

// Manual is a Clock that only moves when told to. Used by tests and benchmarks.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a Manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return m.now
}

// Set moves the clock to t if t is later than the current time
func (m *Manual) Set(t time.Time) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.After(m.now) {
		m.now = t
	}
	return m.now
}
