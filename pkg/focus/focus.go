// Package focus tracks keyboard focus among the focusable widgets of a
// frame. The app owns a Scope, clears it at the start of each build and
// registers every focusable widget with its last known rect:
//
//	a.focus.Begin()
//	...
//	resp := widgets.OnClick(ui, button)
//	rect, _ := ui.RectOf(resp.ID)
//	a.focus.Add(saveKey, rect)
//	if a.focus.IsFocused(saveKey) { ... }
//
// Keys must be comparable.
package focus

import (
	"math"

	"github.com/go-drift/cellui/pkg/geom"
)

// Direction is a directional traversal.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

type node struct {
	key  any
	rect geom.Rect
}

// Scope holds the focus order of the current frame and the focused key.
// The zero value is ready to use and has nothing focused.
type Scope struct {
	nodes   []node
	prev    []node
	focused any
	has     bool
}

// Begin starts a new frame. Nodes registered during the previous frame stay
// available for traversal until the first Add.
func (s *Scope) Begin() {
	s.prev, s.nodes = s.nodes, s.prev[:0]
}

// Add registers key as focusable, in traversal order. rect is where the
// widget was last drawn; an empty rect takes the key out of directional
// traversal but not out of Next and Previous.
func (s *Scope) Add(key any, rect geom.Rect) {
	s.nodes = append(s.nodes, node{key: key, rect: rect})
}

// Len returns the number of focusable keys in traversal.
func (s *Scope) Len() int { return len(s.current()) }

// current is this frame's order, or the previous frame's before any Add.
func (s *Scope) current() []node {
	if len(s.nodes) == 0 {
		return s.prev
	}
	return s.nodes
}

// Focused returns the focused key.
func (s *Scope) Focused() (any, bool) { return s.focused, s.has }

// IsFocused reports whether key has focus.
func (s *Scope) IsFocused(key any) bool { return s.has && s.focused == key }

// Focus gives key focus. It does not need to be registered yet.
func (s *Scope) Focus(key any) {
	s.focused, s.has = key, true
}

// Unfocus clears the focus.
func (s *Scope) Unfocus() {
	s.focused, s.has = nil, false
}

func (s *Scope) index() int {
	if !s.has {
		return -1
	}
	for i, n := range s.current() {
		if n.key == s.focused {
			return i
		}
	}
	return -1
}

// Next moves focus to the next key, wrapping at the end. Without a focused
// key it focuses the first one. It reports false when nothing is
// focusable.
func (s *Scope) Next() bool { return s.step(1) }

// Previous moves focus to the previous key, wrapping at the start.
func (s *Scope) Previous() bool { return s.step(-1) }

func (s *Scope) step(delta int) bool {
	nodes := s.current()
	if len(nodes) == 0 {
		return false
	}
	i := s.index()
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(nodes) - 1
	default:
		i = wrapIndex(i+delta, len(nodes))
	}
	s.Focus(nodes[i].key)
	return true
}

// Move moves focus to the nearest key in direction d, preferring keys
// aligned with the focused one. Without a focused key, or when the focused
// key has no rect, it falls back to Next or Previous. It reports false when
// focus did not change.
func (s *Scope) Move(d Direction) bool {
	nodes := s.current()
	i := s.index()
	if i < 0 || nodes[i].rect.IsEmpty() {
		return s.step(linearDelta(d))
	}
	from := nodes[i].rect

	best, bestScore := -1, math.MaxFloat64
	for j, n := range nodes {
		if j == i || n.rect.IsEmpty() || !isInDirection(from, n.rect, d) {
			continue
		}
		if score := directionalScore(from, n.rect, d); score < bestScore {
			best, bestScore = j, score
		}
	}
	if best < 0 {
		return false
	}
	s.Focus(nodes[best].key)
	return true
}

func linearDelta(d Direction) int {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// center returns twice the rect's center, which keeps it integral.
func center(r geom.Rect) (x, y int) {
	return r.Left + r.Right, r.Top + r.Bottom
}

func isInDirection(from, to geom.Rect, d Direction) bool {
	fx, fy := center(from)
	tx, ty := center(to)
	switch d {
	case Up:
		return ty < fy
	case Down:
		return ty > fy
	case Left:
		return tx < fx
	case Right:
		return tx > fx
	}
	return false
}

// directionalScore is lower for closer targets. Cross-axis distance counts
// double so aligned targets win.
func directionalScore(from, to geom.Rect, d Direction) float64 {
	fx, fy := center(from)
	tx, ty := center(to)
	primary, cross := math.Abs(float64(ty-fy)), math.Abs(float64(tx-fx))
	if d == Left || d == Right {
		primary, cross = cross, primary
	}
	return primary + cross*2
}
