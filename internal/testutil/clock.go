// Package testutil holds deterministic stand-ins for wall-clock time and
// run identifiers, so grading reports can be compared byte for byte.
package testutil

import (
	"sync"
	"time"
)

// DeterministicClock returns a predictable sequence of wall-clock times.
//
// The first call to Now returns the base time; every later call advances by
// the configured step.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	base  time.Time
	step  time.Duration
	calls int64
}

// NewDeterministicClock creates a clock starting at base and advancing by
// step on every call.
func NewDeterministicClock(base time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{base: base, step: step}
}

// Now returns the next time in the sequence.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *DeterministicClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next call returns the base time again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
