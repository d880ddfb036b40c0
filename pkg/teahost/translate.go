package teahost

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
)

type namedKey struct {
	code event.KeyCode
	mods event.Modifiers
}

var namedKeys = map[tea.KeyType]namedKey{
	tea.KeyEnter:          {event.KeyEnter, event.ModNone},
	tea.KeyTab:            {event.KeyTab, event.ModNone},
	tea.KeyShiftTab:       {event.KeyBacktab, event.ModNone},
	tea.KeyBackspace:      {event.KeyBackspace, event.ModNone},
	tea.KeyCtrlH:          {event.KeyBackspace, event.ModNone},
	tea.KeyEsc:            {event.KeyEscape, event.ModNone},
	tea.KeyDelete:         {event.KeyDelete, event.ModNone},
	tea.KeyInsert:         {event.KeyInsert, event.ModNone},
	tea.KeyUp:             {event.KeyUp, event.ModNone},
	tea.KeyDown:           {event.KeyDown, event.ModNone},
	tea.KeyLeft:           {event.KeyLeft, event.ModNone},
	tea.KeyRight:          {event.KeyRight, event.ModNone},
	tea.KeyHome:           {event.KeyHome, event.ModNone},
	tea.KeyEnd:            {event.KeyEnd, event.ModNone},
	tea.KeyPgUp:           {event.KeyPageUp, event.ModNone},
	tea.KeyPgDown:         {event.KeyPageDown, event.ModNone},
	tea.KeyCtrlUp:         {event.KeyUp, event.ModCtrl},
	tea.KeyCtrlDown:       {event.KeyDown, event.ModCtrl},
	tea.KeyCtrlLeft:       {event.KeyLeft, event.ModCtrl},
	tea.KeyCtrlRight:      {event.KeyRight, event.ModCtrl},
	tea.KeyCtrlHome:       {event.KeyHome, event.ModCtrl},
	tea.KeyCtrlEnd:        {event.KeyEnd, event.ModCtrl},
	tea.KeyCtrlPgUp:       {event.KeyPageUp, event.ModCtrl},
	tea.KeyCtrlPgDown:     {event.KeyPageDown, event.ModCtrl},
	tea.KeyShiftUp:        {event.KeyUp, event.ModShift},
	tea.KeyShiftDown:      {event.KeyDown, event.ModShift},
	tea.KeyShiftLeft:      {event.KeyLeft, event.ModShift},
	tea.KeyShiftRight:     {event.KeyRight, event.ModShift},
	tea.KeyShiftHome:      {event.KeyHome, event.ModShift},
	tea.KeyShiftEnd:       {event.KeyEnd, event.ModShift},
	tea.KeyCtrlShiftUp:    {event.KeyUp, event.ModCtrl | event.ModShift},
	tea.KeyCtrlShiftDown:  {event.KeyDown, event.ModCtrl | event.ModShift},
	tea.KeyCtrlShiftLeft:  {event.KeyLeft, event.ModCtrl | event.ModShift},
	tea.KeyCtrlShiftRight: {event.KeyRight, event.ModCtrl | event.ModShift},
	tea.KeyCtrlShiftHome:  {event.KeyHome, event.ModCtrl | event.ModShift},
	tea.KeyCtrlShiftEnd:   {event.KeyEnd, event.ModCtrl | event.ModShift},
	tea.KeyF1:             {event.KeyF1, event.ModNone},
	tea.KeyF2:             {event.KeyF2, event.ModNone},
	tea.KeyF3:             {event.KeyF3, event.ModNone},
	tea.KeyF4:             {event.KeyF4, event.ModNone},
	tea.KeyF5:             {event.KeyF5, event.ModNone},
	tea.KeyF6:             {event.KeyF6, event.ModNone},
	tea.KeyF7:             {event.KeyF7, event.ModNone},
	tea.KeyF8:             {event.KeyF8, event.ModNone},
	tea.KeyF9:             {event.KeyF9, event.ModNone},
	tea.KeyF10:            {event.KeyF10, event.ModNone},
	tea.KeyF11:            {event.KeyF11, event.ModNone},
	tea.KeyF12:            {event.KeyF12, event.ModNone},
}

// translateKey maps a Bubble Tea key message. A burst of runes becomes one
// key press per rune, and a bracketed paste becomes a single Paste.
func translateKey(msg tea.KeyMsg) []event.Event {
	var alt event.Modifiers
	if msg.Alt {
		alt = event.ModAlt
	}
	if msg.Paste {
		if len(msg.Runes) == 0 {
			return nil
		}
		return []event.Event{event.Paste{Text: string(msg.Runes)}}
	}

	switch t := msg.Type; {
	case t == tea.KeyRunes:
		out := make([]event.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, event.KeyPress{Key: event.Char(r), Modifiers: alt})
		}
		return out
	case t == tea.KeySpace:
		return []event.Event{event.KeyPress{Key: event.Char(' '), Modifiers: alt}}
	case t == tea.KeyCtrlAt:
		return []event.Event{event.KeyPress{Key: event.Char(' '), Modifiers: alt | event.ModCtrl}}
	}
	if k, ok := namedKeys[msg.Type]; ok {
		return []event.Event{event.KeyPress{Key: event.Named(k.code), Modifiers: k.mods | alt}}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []event.Event{event.KeyPress{Key: event.Char(r), Modifiers: alt | event.ModCtrl}}
	}
	return nil
}

func buttonOf(b tea.MouseButton) event.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return event.ButtonPrimary
	case tea.MouseButtonRight:
		return event.ButtonSecondary
	case tea.MouseButtonMiddle:
		return event.ButtonMiddle
	}
	return event.ButtonNone
}

func scrollOf(b tea.MouseButton) (geom.Vec, bool) {
	switch b {
	case tea.MouseButtonWheelUp:
		return geom.Vec{Y: -1}, true
	case tea.MouseButtonWheelDown:
		return geom.Vec{Y: 1}, true
	case tea.MouseButtonWheelLeft:
		return geom.Vec{X: -1}, true
	case tea.MouseButtonWheelRight:
		return geom.Vec{X: 1}, true
	}
	return geom.Vec{}, false
}

func mouseMods(msg tea.MouseMsg) event.Modifiers {
	var m event.Modifiers
	if msg.Shift {
		m |= event.ModShift
	}
	if msg.Ctrl {
		m |= event.ModCtrl
	}
	if msg.Alt {
		m |= event.ModAlt
	}
	return m
}

// pointer tracks the last pointer position and the button held down, so
// Bubble Tea's press/motion/release messages can be fed through the
// decoder.
type pointer struct {
	decoder event.MouseDecoder
	down    event.MouseButton
	last    geom.Pos
}

func (p *pointer) translate(msg tea.MouseMsg) []event.Event {
	pos := geom.Pos{X: msg.X, Y: msg.Y}
	mods := mouseMods(msg)

	if d, ok := scrollOf(msg.Button); ok {
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		return []event.Event{event.Mouse{Kind: event.MouseScroll, Pos: pos, Delta: d, Modifiers: mods}}
	}

	var out []event.Event
	moved := pos != p.last
	p.last = pos
	decode := func(r event.Report, b event.MouseButton) {
		if m, ok := p.decoder.Update(r, pos, b, mods); ok {
			out = append(out, m)
		}
	}
	move := func() {
		out = append(out, event.Mouse{Kind: event.MouseMove, Pos: pos, Modifiers: mods})
	}

	switch msg.Action {
	case tea.MouseActionPress:
		b := buttonOf(msg.Button)
		if b == event.ButtonNone {
			return nil
		}
		p.down = b
		if moved {
			move()
		}
		decode(event.ReportDown, b)
	case tea.MouseActionMotion:
		switch {
		case p.down != event.ButtonNone && msg.Button != tea.MouseButtonNone:
			if moved {
				decode(event.ReportDrag, p.down)
			}
		case moved:
			move()
		}
	case tea.MouseActionRelease:
		if p.down == event.ButtonNone {
			return nil
		}
		decode(event.ReportUp, p.down)
		p.down = event.ButtonNone
		if moved {
			move()
		}
	}
	return out
}
