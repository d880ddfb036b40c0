package animation

import "time"

// Clock provides wall time to hosts, which turn it into the monotonic frame
// time fed to the engine. Tests inject a fake clock via SetClock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

var clock Clock = realClock{}

// SetClock replaces the clock and returns the previous one.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// Since returns the elapsed time from start on the active clock.
func Since(start time.Time) time.Duration { return clock.Now().Sub(start) }
