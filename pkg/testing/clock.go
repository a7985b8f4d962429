package testing

import (
	"sync"
	"time"
)

// Epoch is where every FakeClock starts.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an animation.Clock that only moves when told to. It is safe
// for concurrent use, so a running scheduler may read it while a test
// advances it.
type FakeClock struct {
	mu      sync.RWMutex
	base    time.Time
	elapsed time.Duration
}

// NewFakeClock returns a clock reading Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{base: Epoch}
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base.Add(c.elapsed)
}

// Advance moves the clock d forward and returns the new reading, which
// makes it convenient as the argument of Scheduler.Step.
func (c *FakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.elapsed += d
	now := c.base.Add(c.elapsed)
	c.mu.Unlock()
	return now
}

// Set jumps to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.base, c.elapsed = t, 0
	c.mu.Unlock()
}
