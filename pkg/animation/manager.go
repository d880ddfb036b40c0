// Package animation provides frame-time driven interpolation for widgets.
//
// Nothing here runs on its own goroutine. The engine advances a [Manager]
// with the host's frame time, and widgets ask it for the current value of a
// keyed animation while painting:
//
//	t := ctx.AnimateBool(id, props.On, 150*time.Millisecond)
//	knob := animation.TweenInt(0, width-1).Evaluate(animation.EaseOut.Apply(t))
//
// A [Controller] offers the same progression for state that a widget owns.
package animation

import (
	"math"
	"time"
)

type boolState struct {
	last float64
	at   time.Duration
}

type valueState struct {
	from, to float64
	toggled  time.Duration
	settled  bool
}

// Manager tracks keyed animations against the frame time.
type Manager struct {
	bools  map[any]*boolState
	values map[any]*valueState
	now    time.Duration
	active bool
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		bools:  make(map[any]*boolState),
		values: make(map[any]*valueState),
	}
}

// Tick sets the frame time. Time never moves backwards.
func (m *Manager) Tick(now time.Duration) {
	if now > m.now {
		m.now = now
	}
}

// BeginFrame forgets which animations were moving. Call it before the
// build that asks for them again.
func (m *Manager) BeginFrame() { m.active = false }

// Now returns the last frame time.
func (m *Manager) Now() time.Duration { return m.now }

// Active reports whether an animation asked since the last BeginFrame was
// still moving.
func (m *Manager) Active() bool { return m.active }

// Clear forgets every animation.
func (m *Manager) Clear() {
	clear(m.bools)
	clear(m.values)
}

// Forget drops the animations stored under key.
func (m *Manager) Forget(key any) {
	delete(m.bools, key)
	delete(m.values, key)
}

// Len returns the number of tracked animations.
func (m *Manager) Len() int { return len(m.bools) + len(m.values) }

// AnimateBool returns linear progress toward 1 when value is true and toward
// 0 when it is false, moving at a rate of one full transition per d. The
// first call for a key returns the end value without animating.
func (m *Manager) AnimateBool(key any, value bool, d time.Duration) float64 {
	end := 0.0
	if value {
		end = 1
	}
	st, ok := m.bools[key]
	if !ok {
		m.bools[key] = &boolState{last: end, at: m.now}
		return end
	}

	elapsed := max(m.now-st.at, 0)
	next := end
	if d > 0 {
		step := float64(elapsed) / float64(d)
		if value {
			next = st.last + step
		} else {
			next = st.last - step
		}
		if math.IsNaN(next) || math.IsInf(next, 0) {
			next = end
		}
	}
	st.last = clampUnit(next)
	st.at = m.now
	if st.last != end {
		m.active = true
	}
	return st.last
}

// AnimateValue returns a value that moves linearly toward target over d
// each time target changes. The first call returns target.
func (m *Manager) AnimateValue(key any, target float64, d time.Duration) float64 {
	st, ok := m.values[key]
	if !ok {
		m.values[key] = &valueState{from: target, to: target, toggled: m.now, settled: true}
		return target
	}

	current := st.to
	if !st.settled && d > 0 {
		t := clampUnit(float64(m.now-st.toggled) / float64(d))
		current = LerpFloat64(st.from, st.to, t)
		if t >= 1 {
			st.settled = true
		}
	}

	if st.to != target {
		st.from, st.to, st.toggled, st.settled = current, target, m.now, false
	}
	if d <= 0 {
		st.from, st.to, st.settled = target, target, true
		current = target
	}
	if !st.settled {
		m.active = true
	}
	return current
}
