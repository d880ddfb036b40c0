package testing

import (
	"fmt"

	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
)

// Send feeds one host event to the engine and reports whether a widget
// sank it. Widgets see the effect on the next Pump.
func (t *WidgetTester) Send(ev event.Event) bool {
	t.tick()
	return t.engine.Handle(ev)
}

func (t *WidgetTester) moveTo(pos geom.Pos) {
	if pos == t.pointer {
		return
	}
	t.pointer = pos
	t.Send(event.Mouse{Kind: event.MouseMove, Pos: pos})
}

func (t *WidgetTester) report(r event.Report, pos geom.Pos, button event.MouseButton) {
	if ev, ok := t.decoder.Update(r, pos, button, event.ModNone); ok {
		t.Send(ev)
	}
}

// center returns the middle cell of the first node matched by finder.
func (t *WidgetTester) center(op string, finder Finder) (geom.Pos, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return geom.Pos{}, fmt.Errorf("%s: finder matched no widgets: %s", op, finder.Description())
	}
	r, ok := result.Rect()
	if !ok || r.IsEmpty() {
		return geom.Pos{}, fmt.Errorf("%s: widget has no area: %s", op, finder.Description())
	}
	return geom.Pos{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}, nil
}

// MoveTo moves the pointer to pos.
func (t *WidgetTester) MoveTo(pos geom.Pos) {
	t.moveTo(pos)
}

// Hover moves the pointer over the first widget matched by finder.
func (t *WidgetTester) Hover(finder Finder) error {
	pos, err := t.center("Hover", finder)
	if err != nil {
		return err
	}
	t.moveTo(pos)
	return nil
}

// ClickAt presses and releases the primary button at pos.
func (t *WidgetTester) ClickAt(pos geom.Pos) {
	t.moveTo(pos)
	t.report(event.ReportDown, pos, event.ButtonPrimary)
	t.report(event.ReportUp, pos, event.ButtonPrimary)
}

// Click clicks the middle of the first widget matched by finder.
func (t *WidgetTester) Click(finder Finder) error {
	pos, err := t.center("Click", finder)
	if err != nil {
		return err
	}
	t.ClickAt(pos)
	return nil
}

// DragAt presses at from, moves one cell at a time along each axis to to,
// and releases there.
func (t *WidgetTester) DragAt(from, to geom.Pos) {
	t.moveTo(from)
	t.report(event.ReportDown, from, event.ButtonPrimary)
	pos := from
	for pos != to {
		switch {
		case pos.X < to.X:
			pos.X++
		case pos.X > to.X:
			pos.X--
		case pos.Y < to.Y:
			pos.Y++
		default:
			pos.Y--
		}
		t.pointer = pos
		t.report(event.ReportDrag, pos, event.ButtonPrimary)
	}
	t.report(event.ReportUp, to, event.ButtonPrimary)
}

// Drag drags from the middle of the first widget matched by finder by
// delta cells.
func (t *WidgetTester) Drag(finder Finder, delta geom.Vec) error {
	pos, err := t.center("Drag", finder)
	if err != nil {
		return err
	}
	t.DragAt(pos, pos.Add(delta))
	return nil
}

// ScrollAt sends a wheel event at pos.
func (t *WidgetTester) ScrollAt(pos geom.Pos, delta geom.Vec) {
	t.moveTo(pos)
	t.Send(event.Mouse{Kind: event.MouseScroll, Pos: pos, Delta: delta})
}

// Scroll scrolls over the middle of the first widget matched by finder.
func (t *WidgetTester) Scroll(finder Finder, delta geom.Vec) error {
	pos, err := t.center("Scroll", finder)
	if err != nil {
		return err
	}
	t.ScrollAt(pos, delta)
	return nil
}

// Press sends a key binding such as "ctrl+s" or "enter" and reports whether
// a widget sank it.
func (t *WidgetTester) Press(binding string) (bool, error) {
	b, err := event.ParseKeybind(binding)
	if err != nil {
		return false, err
	}
	return t.Send(event.KeyPress(b)), nil
}

// Type sends one key press per rune of text.
func (t *WidgetTester) Type(text string) {
	for _, r := range text {
		t.Send(event.KeyPress{Key: event.Char(r)})
	}
}

// Paste sends a bracketed paste.
func (t *WidgetTester) Paste(text string) bool {
	return t.Send(event.Paste{Text: text})
}
