package testing

import (
	"sync"
	"time"
)

// clockEpoch is where every FakeClock starts, so golden output that
// prints times is stable.
var clockEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an animation.Clock that only moves when told to. It is safe
// for concurrent use, so a driver goroutine may read it while the test
// advances it.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	elapsed time.Duration
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: clockEpoch}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed is the total duration passed to Advance and AdvanceTo.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.elapsed += d
}

// AdvanceTo moves the clock forward to t and reports how far it moved.
// A t in the past leaves the clock alone.
func (c *FakeClock) AdvanceTo(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := t.Sub(c.now)
	if d <= 0 {
		return 0
	}
	c.now = t
	c.elapsed += d
	return d
}

// Set jumps to t in either direction without counting toward Elapsed.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
