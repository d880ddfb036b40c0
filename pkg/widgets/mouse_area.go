package widgets

import (
	"strings"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
)

// MouseFilter selects the pointer events a [MouseArea] reacts to.
type MouseFilter uint8

const (
	FilterEnter MouseFilter = 1 << iota
	FilterLeave
	FilterMove
	FilterDrag
	FilterClick
	FilterHeld
	FilterScroll

	FilterAll = FilterEnter | FilterLeave | FilterMove | FilterDrag | FilterClick | FilterHeld | FilterScroll
)

// Has reports whether every bit of o is set.
func (f MouseFilter) Has(o MouseFilter) bool { return f&o == o }

func (f MouseFilter) String() string {
	names := []string{"enter", "leave", "move", "drag", "click", "held", "scroll"}
	var parts []string
	for i, name := range names {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MouseArea reports what the pointer did to its rect since the last frame.
//
//	resp := widgets.OnClick(ui, func() { widgets.Text(ui, "[ ok ]") })
//	if resp.Value.Clicked {
//	    save()
//	}
type MouseArea struct {
	// Filter defaults to FilterAll.
	Filter MouseFilter
	// Button is the button clicks, holds and drags must use. Zero means the
	// primary button.
	Button event.MouseButton
	// Sink stops handled events from reaching widgets beneath.
	Sink bool
}

// MouseResponse is a MouseArea's report for one frame.
type MouseResponse struct {
	Clicked bool
	Held    bool
	Hovered bool
	// Scrolled is the accumulated vertical wheel delta.
	Scrolled int
	Dragged  *Drag
}

// Drag describes the latest drag step.
type Drag struct {
	Origin   geom.Pos
	Current  geom.Pos
	Delta    geom.Vec
	Released bool
}

// Show calls the mouse area with children.
func (m MouseArea) Show(ui *core.UI, children func()) core.Response[MouseResponse] {
	return core.ShowChildren(ui, mouseAreaType, m, children)
}

// OnClick is a MouseArea that only listens for clicks and hover.
func OnClick(ui *core.UI, children func()) core.Response[MouseResponse] {
	return MouseArea{Filter: FilterClick | FilterEnter | FilterLeave}.Show(ui, children)
}

var mouseAreaType = core.NewType("MouseArea", func() core.Updater[MouseArea, MouseResponse] { return &mouseArea{} })

type mouseArea struct {
	props   MouseArea
	hovered bool
	pending MouseResponse
}

func (m *mouseArea) Update(props MouseArea) MouseResponse {
	if props.Filter == 0 {
		props.Filter = FilterAll
	}
	if props.Button == event.ButtonNone {
		props.Button = event.ButtonPrimary
	}
	m.props = props
	resp := m.pending
	resp.Hovered = m.hovered
	m.pending = MouseResponse{}
	return resp
}

func (m *mouseArea) Interest() input.Interest { return input.InterestMouse }

func (m *mouseArea) Describe() map[string]any {
	return map[string]any{"filter": m.props.Filter.String(), "hovered": m.hovered}
}

func (m *mouseArea) Event(ctx *core.EventContext, ev input.Event) input.Handled {
	f := m.props.Filter
	handled := false
	switch ev := ev.(type) {
	case input.MouseEnter:
		if f.Has(FilterEnter) {
			m.hovered, handled = true, true
		}
	case input.MouseLeave:
		if f.Has(FilterLeave) {
			m.hovered, handled = false, true
		}
	case input.MouseMove:
		handled = f.Has(FilterMove)
	case input.MouseClick:
		if f.Has(FilterClick) && ev.Button == m.props.Button {
			m.pending.Clicked, m.pending.Held, handled = true, false, true
		}
	case input.MouseHeld:
		if f.Has(FilterHeld) && ev.Button == m.props.Button {
			m.pending.Held, handled = true, true
		}
	case input.MouseDrag:
		if f.Has(FilterDrag) && ev.Button == m.props.Button {
			m.pending.Dragged = &Drag{Origin: ev.Origin, Current: ev.Pos, Delta: ev.Delta, Released: ev.Released}
			handled = true
		}
	case input.MouseScroll:
		if f.Has(FilterScroll) {
			m.pending.Scrolled += ev.Delta.Y
			handled = true
		}
	}
	if handled {
		ctx.RequestRepaint()
		if m.props.Sink {
			return input.Sink
		}
	}
	return input.Bubble
}
