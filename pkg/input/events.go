package input

import (
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
)

// Handled is a handler's verdict on an event.
type Handled int

const (
	// Bubble passes the event on to the next registrant.
	Bubble Handled = iota
	// Sink consumes the event and stops dispatch.
	Sink
)

// IsSink reports whether dispatch should stop.
func (h Handled) IsSink() bool { return h == Sink }

func (h Handled) String() string {
	if h == Sink {
		return "sink"
	}
	return "bubble"
}

// Event is what a widget's event handler receives.
type Event interface {
	isInputEvent()
}

// MouseEnter is delivered when the pointer first falls inside a widget.
type MouseEnter struct{ Pos geom.Pos }

// MouseLeave is delivered when the pointer leaves a widget it had entered.
type MouseLeave struct{ Pos geom.Pos }

// MouseMove is broadcast to every move-interested widget.
type MouseMove struct{ Pos geom.Pos }

// MouseClick is a press and release at the same cell.
type MouseClick struct {
	Pos       geom.Pos
	Button    event.MouseButton
	Modifiers event.Modifiers
}

// MouseHeld is a button press that has not been released yet.
type MouseHeld struct {
	Pos       geom.Pos
	Button    event.MouseButton
	Modifiers event.Modifiers
}

// MouseDrag covers the start, continuation and release of a drag.
type MouseDrag struct {
	Released  bool
	Origin    geom.Pos
	Pos       geom.Pos
	Delta     geom.Vec
	Button    event.MouseButton
	Modifiers event.Modifiers
}

// MouseScroll is a wheel step.
type MouseScroll struct {
	Pos       geom.Pos
	Delta     geom.Vec
	Modifiers event.Modifiers
}

// KeyInput is a key press.
type KeyInput struct {
	Key       event.Key
	Modifiers event.Modifiers
}

// Keybind returns the press as a binding for matching.
func (k KeyInput) Keybind() event.Keybind {
	return event.Keybind{Key: k.Key, Modifiers: k.Modifiers}
}

// PasteInput is bracketed paste text, routed like a key press.
type PasteInput struct{ Text string }

// FocusGained is delivered when the terminal window gains focus.
type FocusGained struct{}

// FocusLost is delivered when the terminal window loses focus.
type FocusLost struct{}

func (MouseEnter) isInputEvent()  {}
func (MouseLeave) isInputEvent()  {}
func (MouseMove) isInputEvent()   {}
func (MouseClick) isInputEvent()  {}
func (MouseHeld) isInputEvent()   {}
func (MouseDrag) isInputEvent()   {}
func (MouseScroll) isInputEvent() {}
func (KeyInput) isInputEvent()    {}
func (PasteInput) isInputEvent()  {}
func (FocusGained) isInputEvent() {}
func (FocusLost) isInputEvent()   {}

// Modifiers returns the modifiers carried by ev, if it carries any.
func Modifiers(ev Event) (event.Modifiers, bool) {
	var m event.Modifiers
	switch e := ev.(type) {
	case MouseClick:
		m = e.Modifiers
	case MouseHeld:
		m = e.Modifiers
	case MouseDrag:
		m = e.Modifiers
	case MouseScroll:
		m = e.Modifiers
	case KeyInput:
		m = e.Modifiers
	default:
		return 0, false
	}
	return m, !m.IsNone()
}
