package core

import "time"

// repaintSchedule tracks when the next frame is wanted.
type repaintSchedule struct {
	now bool
	at  time.Duration
	// scheduled reports whether at is meaningful.
	scheduled bool
}

func (r *repaintSchedule) request() { r.now = true }

func (r *repaintSchedule) requestAt(t time.Duration) {
	if !r.scheduled || t < r.at {
		r.at = t
		r.scheduled = true
	}
}

func (r *repaintSchedule) due(now time.Duration) bool {
	return r.now || (r.scheduled && now >= r.at)
}

// clear drops requests satisfied by a frame at now. Deadlines still in the
// future survive.
func (r *repaintSchedule) clear(now time.Duration) {
	r.now = false
	if r.scheduled && now >= r.at {
		r.scheduled = false
	}
}

// Deadline returns the earliest scheduled repaint, if any.
func (e *Engine) Deadline() (time.Duration, bool) {
	if e.repaint.now {
		return e.now, true
	}
	return e.repaint.at, e.repaint.scheduled
}
