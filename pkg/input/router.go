// Package input routes decoded host events to widgets.
//
// The router keeps two layered registries that the layout pass fills every
// frame: one for widgets with pointer or focus interest and one for widgets
// that take key input. Pointer events are hit-tested against the layout's
// clip-intersected rects; every dispatch walks registrants newest layer first
// and stops at the first Sink.
package input

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/arena"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
)

// Geometry answers layout questions for hit-testing.
type Geometry interface {
	// LayoutRect returns the absolute rect of id.
	LayoutRect(id arena.ID) (geom.Rect, bool)
	// ClippedBy returns the nearest clipping ancestor of id, or arena.Nil.
	ClippedBy(id arena.ID) arena.ID
}

// Target delivers an event to a widget and returns its verdict.
type Target interface {
	Dispatch(id arena.ID, ev Event) Handled
}

// ButtonState is the last known state of a mouse button.
type ButtonState int

const (
	ButtonReleased ButtonState = iota
	ButtonHeld
)

// Router owns the input registries and the hover state machine.
type Router struct {
	Mouse    Layered[Interest]
	Keyboard Layered[struct{}]

	pos       geom.Pos
	buttons   map[event.MouseButton]ButtonState
	modifiers event.Modifiers
	hovered   map[arena.ID]struct{}

	hit            []arena.ID
	entered        []arena.ID
	enteredAndSunk []arena.ID

	dragging   bool
	dragButton event.MouseButton
	dragOrigin geom.Pos

	log *slog.Logger
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{
		buttons: make(map[event.MouseButton]ButtonState),
		hovered: make(map[arena.ID]struct{}),
		log:     logger.WithComponent("router"),
	}
}

// PushLayer opens a layer rooted at id in both registries.
func (r *Router) PushLayer(id arena.ID) {
	r.Mouse.PushLayer(id)
	r.Keyboard.PushLayer(id)
}

// PopLayer closes the current layer in each registry whose current root is id.
func (r *Router) PopLayer(id arena.ID) {
	if root, ok := r.Mouse.CurrentRoot(); ok && root == id {
		r.Mouse.PopLayer()
	}
	if root, ok := r.Keyboard.CurrentRoot(); ok && root == id {
		r.Keyboard.PopLayer()
	}
}

// Register records a widget's interest in the current layers.
func (r *Router) Register(id arena.ID, interest Interest) {
	if interest.IsMouseAny() || interest.IsFocus() {
		r.Mouse.Insert(id, interest)
	}
	if interest.IsKeyInput() {
		r.Keyboard.Insert(id, struct{}{})
	}
}

// ResetRegistries drops every registration before a layout pass. Hover and
// drag state survive across frames.
func (r *Router) ResetRegistries() {
	r.Mouse.Clear()
	r.Keyboard.Clear()
}

// Remove purges id from the registries, the hovered set, the hit list, both
// entered lists and the drag bookkeeping.
func (r *Router) Remove(id arena.ID) {
	r.Mouse.Remove(id)
	r.Keyboard.Remove(id)
	delete(r.hovered, id)
	r.hit = slices.DeleteFunc(r.hit, func(x arena.ID) bool { return x == id })
	r.entered = slices.DeleteFunc(r.entered, func(x arena.ID) bool { return x == id })
	r.enteredAndSunk = slices.DeleteFunc(r.enteredAndSunk, func(x arena.ID) bool { return x == id })
}

// Tracks reports whether id appears anywhere in the router's state.
func (r *Router) Tracks(id arena.ID) bool {
	if _, ok := r.hovered[id]; ok {
		return true
	}
	return r.Mouse.Contains(id) || r.Keyboard.Contains(id) ||
		slices.Contains(r.hit, id) || slices.Contains(r.entered, id) ||
		slices.Contains(r.enteredAndSunk, id)
}

// Hovered reports whether the pointer is over id.
func (r *Router) Hovered(id arena.ID) bool {
	_, ok := r.hovered[id]
	return ok
}

// Pos returns the last known pointer position.
func (r *Router) Pos() geom.Pos { return r.pos }

// Modifiers returns the modifiers of the last event.
func (r *Router) Modifiers() event.Modifiers { return r.modifiers }

// Button returns the last known state of b.
func (r *Router) Button(b event.MouseButton) ButtonState { return r.buttons[b] }

// Hits returns the current hit list in layered order.
func (r *Router) Hits() []arena.ID { return slices.Clone(r.hit) }

// Entered returns the widgets the pointer has entered and not yet left.
func (r *Router) Entered() []arena.ID { return slices.Clone(r.entered) }

// Handle dispatches one host event. Resize and Quit are not router concerns
// and always bubble.
func (r *Router) Handle(ev event.Event, geo Geometry, tgt Target) Handled {
	switch e := ev.(type) {
	case event.Mouse:
		r.modifiers = e.Modifiers
		return r.mouse(e, geo, tgt)
	case event.KeyPress:
		r.modifiers = e.Modifiers
		return r.keyboard(KeyInput{Key: e.Key, Modifiers: e.Modifiers}, tgt)
	case event.Paste:
		return r.keyboard(PasteInput{Text: e.Text}, tgt)
	case event.Focus:
		r.focus(e.Gained, tgt)
		return Bubble
	default:
		return Bubble
	}
}

func (r *Router) mouse(e event.Mouse, geo Geometry, tgt Target) Handled {
	r.pos = e.Pos

	switch e.Kind {
	case event.MouseMove:
		return r.move(MouseMove{Pos: e.Pos}, geo, tgt)

	case event.MouseClick:
		r.buttons[e.Button] = ButtonReleased
		r.refreshHits(e.Pos, geo)
		return r.sendToHits(MouseClick{Pos: e.Pos, Button: e.Button, Modifiers: e.Modifiers}, tgt, true)

	case event.MouseHeld:
		r.buttons[e.Button] = ButtonHeld
		r.refreshHits(e.Pos, geo)
		return r.sendToHits(MouseHeld{Pos: e.Pos, Button: e.Button, Modifiers: e.Modifiers}, tgt, true)

	case event.MouseScroll:
		r.refreshHits(e.Pos, geo)
		return r.sendToHits(MouseScroll{Pos: e.Pos, Delta: e.Delta, Modifiers: e.Modifiers}, tgt, true)

	case event.MouseDragStart:
		r.buttons[e.Button] = ButtonHeld
		r.dragging, r.dragButton, r.dragOrigin = true, e.Button, e.Origin
		return r.sendToHits(MouseDrag{Origin: e.Origin, Pos: e.Pos, Delta: e.Delta, Button: e.Button, Modifiers: e.Modifiers}, tgt, false)

	case event.MouseDragHeld:
		r.buttons[e.Button] = ButtonHeld
		origin := e.Origin
		if r.dragging {
			origin = r.dragOrigin
		}
		return r.sendToHits(MouseDrag{Origin: origin, Pos: e.Pos, Delta: e.Delta, Button: e.Button, Modifiers: e.Modifiers}, tgt, false)

	case event.MouseDragRelease:
		r.buttons[e.Button] = ButtonReleased
		origin := e.Origin
		if r.dragging {
			origin = r.dragOrigin
		}
		r.dragging = false
		// A drag release stays a drag event; no click is synthesized.
		return r.sendToHits(MouseDrag{Released: true, Origin: origin, Pos: e.Pos, Button: e.Button, Modifiers: e.Modifiers}, tgt, false)
	}
	return Bubble
}

func (r *Router) move(ev MouseMove, geo Geometry, tgt Target) Handled {
	for id, interest := range r.snapshot() {
		if interest.Has(InterestMouseMove) {
			tgt.Dispatch(id, ev)
		}
	}

	r.refreshHits(ev.Pos, geo)

	for _, id := range r.hit {
		if slices.Contains(r.entered, id) {
			if slices.Contains(r.enteredAndSunk, id) {
				break
			}
			continue
		}
		r.entered = append(r.entered, id)
		r.hovered[id] = struct{}{}
		resp := Bubble
		if r.interest(id).Has(InterestMouseEnter) {
			resp = tgt.Dispatch(id, MouseEnter(ev))
		}
		if resp.IsSink() {
			r.enteredAndSunk = append(r.enteredAndSunk, id)
			break
		}
	}

	var left []arena.ID
	for _, id := range r.entered {
		if rect, ok := r.hitRect(id, geo); ok && rect.Contains(ev.Pos) {
			continue
		}
		left = append(left, id)
	}
	for _, id := range left {
		delete(r.hovered, id)
		r.entered = slices.DeleteFunc(r.entered, func(x arena.ID) bool { return x == id })
		r.enteredAndSunk = slices.DeleteFunc(r.enteredAndSunk, func(x arena.ID) bool { return x == id })
		if r.interest(id).Has(InterestMouseLeave) {
			tgt.Dispatch(id, MouseLeave(ev))
		}
	}

	return Bubble
}

// sendToHits delivers ev to the hit list in layered order, optionally
// restricted to pointer-interested registrants, stopping at the first Sink.
func (r *Router) sendToHits(ev Event, tgt Target, requireInterest bool) Handled {
	for _, id := range slices.Clone(r.hit) {
		if requireInterest && !r.interest(id).IsMouseAny() {
			continue
		}
		if resp := tgt.Dispatch(id, ev); resp.IsSink() {
			r.log.Debug("sunk", "widget", id, "event", ev)
			return Sink
		}
	}
	return Bubble
}

func (r *Router) keyboard(ev Event, tgt Target) Handled {
	var ids []arena.ID
	for id := range r.Keyboard.All() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if resp := tgt.Dispatch(id, ev); resp.IsSink() {
			r.log.Debug("key sunk", "widget", id, "event", ev)
			return Sink
		}
	}
	return Bubble
}

func (r *Router) focus(gained bool, tgt Target) {
	want, ev := InterestFocusLost, Event(FocusLost{})
	if gained {
		want, ev = InterestFocusGained, FocusGained{}
	}
	for id, interest := range r.snapshot() {
		if interest.Has(want) {
			tgt.Dispatch(id, ev)
		}
	}
}

// HitTest returns the pointer-interested registrants whose clip-intersected
// rect contains pos, in layered order.
func (r *Router) HitTest(pos geom.Pos, geo Geometry) []arena.ID {
	var hits []arena.ID
	for id, interest := range r.Mouse.All() {
		if !interest.IsMouseAny() {
			continue
		}
		if rect, ok := r.hitRect(id, geo); ok && rect.Contains(pos) {
			hits = append(hits, id)
		}
	}
	return hits
}

func (r *Router) refreshHits(pos geom.Pos, geo Geometry) {
	r.hit = r.HitTest(pos, geo)
}

// hitRect intersects id's rect with every clipping ancestor's rect.
func (r *Router) hitRect(id arena.ID, geo Geometry) (geom.Rect, bool) {
	rect, ok := geo.LayoutRect(id)
	if !ok {
		return geom.Rect{}, false
	}
	for clip := geo.ClippedBy(id); !clip.IsNil(); clip = geo.ClippedBy(clip) {
		parent, ok := geo.LayoutRect(clip)
		if !ok {
			break
		}
		rect = rect.Intersect(parent)
	}
	return rect, true
}

func (r *Router) interest(id arena.ID) Interest {
	for x, interest := range r.Mouse.All() {
		if x == id {
			return interest
		}
	}
	return InterestNone
}

type registration struct {
	id       arena.ID
	interest Interest
}

// snapshot copies the mouse registry so handlers cannot disturb iteration.
func (r *Router) snapshot() iter.Seq2[arena.ID, Interest] {
	var regs []registration
	for id, interest := range r.Mouse.All() {
		regs = append(regs, registration{id, interest})
	}
	return func(yield func(arena.ID, Interest) bool) {
		for _, reg := range regs {
			if !yield(reg.id, reg.interest) {
				return
			}
		}
	}
}
