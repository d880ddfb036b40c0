package animation

import (
	"fmt"
	"time"
)

// Status is the state of a Controller.
type Status int

const (
	// Dismissed means the controller rests at the lower bound.
	Dismissed Status = iota
	// Forward means the controller is moving toward the upper bound.
	Forward
	// Reverse means the controller is moving toward the lower bound.
	Reverse
	// Completed means the controller rests at the upper bound.
	Completed
)

func (s Status) String() string {
	switch s {
	case Dismissed:
		return "dismissed"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller moves Value between 0 and 1 over Duration. It has no goroutine
// or ticker of its own: call Step with the frame time each frame.
type Controller struct {
	// Value is the eased progress, between 0 and 1.
	Value    float64
	Duration time.Duration
	Curve    Curve

	status     Status
	start      time.Duration
	startValue float64
	target     float64
	now        time.Duration
}

// NewController returns a dismissed controller.
func NewController(d time.Duration) *Controller {
	return &Controller{Duration: d}
}

// Forward starts moving toward 1 from the current value.
func (c *Controller) Forward() { c.animateTo(1, Forward) }

// Reverse starts moving toward 0 from the current value.
func (c *Controller) Reverse() { c.animateTo(0, Reverse) }

// Toggle reverses direction, or starts forward from rest at 0.
func (c *Controller) Toggle() {
	if c.status == Forward || c.status == Completed {
		c.Reverse()
		return
	}
	c.Forward()
}

func (c *Controller) animateTo(target float64, dir Status) {
	c.startValue = c.Value
	c.target = target
	c.start = c.now
	c.status = dir
}

// Step advances the controller to frame time now and reports whether it is
// still animating.
func (c *Controller) Step(now time.Duration) bool {
	c.now = now
	if !c.IsAnimating() {
		return false
	}
	progress := 1.0
	if c.Duration > 0 {
		progress = clampUnit(float64(now-c.start) / float64(c.Duration))
	}
	c.Value = c.startValue + (c.target-c.startValue)*c.Curve.Apply(progress)
	if progress >= 1 {
		c.Value = c.target
		if c.target >= 1 {
			c.status = Completed
		} else {
			c.status = Dismissed
		}
		return false
	}
	return true
}

// Reset snaps to 0 and stops.
func (c *Controller) Reset() {
	c.Value = 0
	c.status = Dismissed
}

// Status returns the current state.
func (c *Controller) Status() Status { return c.status }

// IsAnimating reports whether the controller is moving.
func (c *Controller) IsAnimating() bool {
	return c.status == Forward || c.status == Reverse
}
