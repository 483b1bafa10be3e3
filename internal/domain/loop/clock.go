package loop

import (
	"sync"
	"time"
)

// ManualClock is a frame scheduler driven by hand. Tests use it to step
// the desktop frame by frame.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []FrameFunc
}

// NewManualClock starts the clock at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// RequestFrame queues fn for the next Advance.
func (c *ManualClock) RequestFrame(fn func(now time.Time)) {
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

// Pending returns how many frame callbacks are waiting.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves time forward by d and fires the callbacks that were queued
// before the call. Callbacks they queue wait for the next Advance.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	frames := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range frames {
		fn(now)
	}
}

// Step calls Advance n times with the same increment.
func (c *ManualClock) Step(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		c.Advance(d)
	}
}
