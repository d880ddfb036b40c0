// Package event defines the decoded input events a host feeds into the engine.
package event

import (
	"fmt"
	"strings"

	"github.com/go-drift/cellui/pkg/geom"
)

// Event is implemented by every host event.
type Event interface {
	isEvent()
}

// Resize reports a new client size in cells.
type Resize struct {
	Size geom.Vec
}

// Focus reports the terminal window gaining or losing focus.
type Focus struct {
	Gained bool
}

// Paste carries a bracketed paste.
type Paste struct {
	Text string
}

// Quit asks the host loop to stop.
type Quit struct{}

// KeyPress is a key with the modifiers held when it was pressed.
type KeyPress struct {
	Key       Key
	Modifiers Modifiers
}

// Mouse is a decoded mouse event. Which fields are meaningful depends on Kind.
type Mouse struct {
	Kind      MouseKind
	Pos       geom.Pos
	Button    MouseButton
	Origin    geom.Pos
	Delta     geom.Vec
	Modifiers Modifiers
}

func (Resize) isEvent()   {}
func (Focus) isEvent()    {}
func (Paste) isEvent()    {}
func (Quit) isEvent()     {}
func (KeyPress) isEvent() {}
func (Mouse) isEvent()    {}

func (m Mouse) String() string {
	switch m.Kind {
	case MouseMove:
		return fmt.Sprintf("move %v", m.Pos)
	case MouseScroll:
		return fmt.Sprintf("scroll %v by %v", m.Pos, m.Delta)
	case MouseDragStart, MouseDragHeld, MouseDragRelease:
		return fmt.Sprintf("%s %s %v from %v", m.Kind, m.Button, m.Pos, m.Origin)
	default:
		return fmt.Sprintf("%s %s %v", m.Kind, m.Button, m.Pos)
	}
}

func (k KeyPress) String() string {
	if k.Modifiers.IsNone() {
		return k.Key.String()
	}
	return k.Modifiers.String() + "+" + k.Key.String()
}

// MouseKind classifies a decoded mouse event.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseClick
	MouseHeld
	MouseDragStart
	MouseDragHeld
	MouseDragRelease
	MouseScroll
)

func (k MouseKind) String() string {
	switch k {
	case MouseMove:
		return "move"
	case MouseClick:
		return "click"
	case MouseHeld:
		return "held"
	case MouseDragStart:
		return "drag_start"
	case MouseDragHeld:
		return "drag_held"
	case MouseDragRelease:
		return "drag_release"
	case MouseScroll:
		return "scroll"
	default:
		return fmt.Sprintf("MouseKind(%d)", int(k))
	}
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// ModNone is the empty modifier set.
const ModNone Modifiers = 0

// IsNone reports whether no modifier is held.
func (m Modifiers) IsNone() bool { return m == 0 }

// Has reports whether every modifier in o is held.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}
