package event

import "github.com/go-drift/cellui/pkg/geom"

// Report is a raw mouse report as terminals deliver it: a button went down,
// came up, or the pointer moved while a button was down.
type Report int

const (
	ReportDown Report = iota
	ReportUp
	ReportDrag
)

type pressState int

const (
	stateIdle pressState = iota
	stateHeld
	stateDragging
)

// MouseDecoder turns raw press/motion/release reports into clicks, holds and
// drags. A press followed by a release at the same cell is a click. A press
// followed by motion to another cell starts a drag; the release that ends a
// drag is a drag release, never a click.
type MouseDecoder struct {
	state  pressState
	button MouseButton
	origin geom.Pos
	last   geom.Pos
}

// Update feeds one raw report and returns the decoded event, if any.
func (d *MouseDecoder) Update(r Report, pos geom.Pos, button MouseButton, mods Modifiers) (Mouse, bool) {
	switch r {
	case ReportDown:
		d.state = stateHeld
		d.button = button
		d.origin = pos
		d.last = pos
		return Mouse{Kind: MouseHeld, Pos: pos, Button: button, Origin: pos, Modifiers: mods}, true

	case ReportUp:
		prev := d.state
		d.state = stateIdle
		switch {
		case prev == stateHeld && pos == d.origin && button == d.button:
			return Mouse{Kind: MouseClick, Pos: pos, Button: button, Origin: pos, Modifiers: mods}, true
		case prev == stateDragging && button == d.button:
			return Mouse{Kind: MouseDragRelease, Pos: pos, Button: button, Origin: d.origin, Modifiers: mods}, true
		}
		return Mouse{}, false

	case ReportDrag:
		switch d.state {
		case stateIdle:
			// Motion with a button down but no press seen: treat as the press.
			return d.Update(ReportDown, pos, button, mods)
		case stateHeld:
			if pos == d.origin {
				return Mouse{}, false
			}
			d.state = stateDragging
			d.last = pos
			return Mouse{Kind: MouseDragStart, Pos: pos, Button: button, Origin: d.origin, Delta: pos.Sub(d.origin), Modifiers: mods}, true
		case stateDragging:
			if button != d.button {
				return Mouse{}, false
			}
			delta := pos.Sub(d.last)
			d.last = pos
			return Mouse{Kind: MouseDragHeld, Pos: pos, Button: button, Origin: d.origin, Delta: delta, Modifiers: mods}, true
		}
	}
	return Mouse{}, false
}

// Pressed reports whether a button is currently down.
func (d *MouseDecoder) Pressed() (MouseButton, bool) {
	if d.state == stateIdle {
		return ButtonNone, false
	}
	return d.button, true
}

// Reset forgets any press in progress.
func (d *MouseDecoder) Reset() {
	*d = MouseDecoder{}
}
