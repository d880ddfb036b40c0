package core

import (
	"sync/atomic"

	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
)

// Updater is the one method every widget state implements: it receives this
// frame's props and returns the widget's response to its caller.
type Updater[P, R any] interface {
	Update(props P) R
}

// NoResponse is the response type of widgets that report nothing.
type NoResponse = struct{}

// Layouter computes a widget's size. Widgets without it size to the largest
// child under the incoming constraints.
type Layouter interface {
	Layout(ctx *LayoutContext, constraints geom.Constraints) geom.Size
}

// Painter draws a widget. Widgets without it paint their children.
type Painter interface {
	Paint(ctx *PaintContext)
}

// EventHandler receives routed input. Widgets without it bubble everything.
type EventHandler interface {
	Event(ctx *EventContext, ev input.Event) input.Handled
}

// Interested declares which events a widget registers for during layout.
type Interested interface {
	Interest() input.Interest
}

// Flexible gives a widget a flex factor inside a list.
type Flexible interface {
	Flex() (factor int, fit geom.FlexFit)
}

// Flowing takes a widget out of its list's sequential layout.
type Flowing interface {
	Flow() geom.Flow
}

// Describer supplies the per-node state shown in debug snapshots.
type Describer interface {
	Describe() map[string]any
}

// TypeID discriminates widget types for reconciliation. Two nodes share a
// TypeID only when they were created from the same Type.
type TypeID uint32

var nextTypeID atomic.Uint32

// Type describes a widget kind: its discriminant, a name for diagnostics and
// a constructor for its default state.
type Type[P, R any] struct {
	id   TypeID
	name string
	new  func() Updater[P, R]
}

// NewType registers a widget kind. Call it once per kind, typically in a
// package-level var.
//
//	var labelType = core.NewType("Label", func() core.Updater[LabelProps, core.NoResponse] {
//		return &label{}
//	})
func NewType[P, R any](name string, newState func() Updater[P, R]) *Type[P, R] {
	return &Type[P, R]{
		id:   TypeID(nextTypeID.Add(1)),
		name: name,
		new:  newState,
	}
}

// ID returns the type discriminant.
func (t *Type[P, R]) ID() TypeID { return t.id }

// Name returns the diagnostic name.
func (t *Type[P, R]) Name() string { return t.name }

// Response is what a widget call returns: the node handle, the widget's own
// response and, for container calls, the children closure's result.
type Response[R any] struct {
	ID    ID
	Value R
}

func interestOf(w any) input.Interest {
	if i, ok := w.(Interested); ok {
		return i.Interest()
	}
	return input.InterestNone
}

func flexOf(w any) (int, geom.FlexFit) {
	if f, ok := w.(Flexible); ok {
		return f.Flex()
	}
	return 0, geom.FlexFitLoose
}

func flowOf(w any) geom.Flow {
	if f, ok := w.(Flowing); ok {
		return f.Flow()
	}
	return geom.FlowInline
}
