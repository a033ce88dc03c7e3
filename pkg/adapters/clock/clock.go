// Package clock provides the time sources of the controller: the wall clock used on
// a live rig and a manual clock that tests and simulations advance explicitly.
package clock

import (
	"sync"
	"time"
)

// Wall measures time since it was created, like millis() since boot.
type Wall struct {
	boot time.Time
}

// NewWall starts a wall clock at zero.
func NewWall() *Wall {
	return &Wall{boot: time.Now()}
}

// Now returns the time elapsed since NewWall. It relies on the monotonic reading of time.Now.
func (w *Wall) Now() time.Duration {
	return time.Since(w.boot)
}

// Sleep blocks for d.
func (w *Wall) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// Manual is a virtual clock. Time only moves when Advance or Sleep is called, which
// makes timed-state boundaries exact in tests.
// Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual clock reading start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

// Sleep advances the clock by d without blocking.
func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}
