package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

var namedKeys = map[tcell.Key]event.KeyCode{
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyBacktab:    event.KeyBacktab,
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyDelete:     event.KeyDelete,
	tcell.KeyInsert:     event.KeyInsert,
	tcell.KeyUp:         event.KeyUp,
	tcell.KeyDown:       event.KeyDown,
	tcell.KeyLeft:       event.KeyLeft,
	tcell.KeyRight:      event.KeyRight,
	tcell.KeyHome:       event.KeyHome,
	tcell.KeyEnd:        event.KeyEnd,
	tcell.KeyPgUp:       event.KeyPageUp,
	tcell.KeyPgDn:       event.KeyPageDown,
	tcell.KeyF1:         event.KeyF1,
	tcell.KeyF2:         event.KeyF2,
	tcell.KeyF3:         event.KeyF3,
	tcell.KeyF4:         event.KeyF4,
	tcell.KeyF5:         event.KeyF5,
	tcell.KeyF6:         event.KeyF6,
	tcell.KeyF7:         event.KeyF7,
	tcell.KeyF8:         event.KeyF8,
	tcell.KeyF9:         event.KeyF9,
	tcell.KeyF10:        event.KeyF10,
	tcell.KeyF11:        event.KeyF11,
	tcell.KeyF12:        event.KeyF12,
}

func translateMods(m tcell.ModMask) event.Modifiers {
	var out event.Modifiers
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out |= event.ModAlt
	}
	return out
}

// translateKey maps a tcell key event. Control characters become the
// letter with ModCtrl, so ctrl+c arrives as Char('c') with ModCtrl.
func translateKey(ev *tcell.EventKey) (event.KeyPress, bool) {
	mods := translateMods(ev.Modifiers())
	k := ev.Key()
	if k == tcell.KeyRune {
		return event.KeyPress{Key: event.Char(ev.Rune()), Modifiers: mods}, true
	}
	if code, ok := namedKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods &^= event.ModShift
		}
		return event.KeyPress{Key: event.Named(code), Modifiers: mods}, true
	}
	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return event.KeyPress{Key: event.Char('a' + rune(k-tcell.KeyCtrlA)), Modifiers: mods | event.ModCtrl}, true
	case k == tcell.KeyCtrlSpace:
		return event.KeyPress{Key: event.Char(' '), Modifiers: mods | event.ModCtrl}, true
	}
	return event.KeyPress{}, false
}

func buttonOf(b tcell.ButtonMask) event.MouseButton {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return event.ButtonPrimary
	case b&tcell.ButtonSecondary != 0:
		return event.ButtonSecondary
	case b&tcell.ButtonMiddle != 0:
		return event.ButtonMiddle
	}
	return event.ButtonNone
}

func scrollOf(b tcell.ButtonMask) geom.Vec {
	var v geom.Vec
	if b&tcell.WheelUp != 0 {
		v.Y--
	}
	if b&tcell.WheelDown != 0 {
		v.Y++
	}
	if b&tcell.WheelLeft != 0 {
		v.X--
	}
	if b&tcell.WheelRight != 0 {
		v.X++
	}
	return v
}

// translator turns tcell events into host events. tcell reports button
// state rather than presses, so it remembers which button is down and
// feeds press/motion/release reports through the mouse decoder.
type translator struct {
	decoder event.MouseDecoder
	down    event.MouseButton
	last    geom.Pos
	pasting bool
	paste   strings.Builder
}

func (t *translator) translate(ev tcell.Event) []event.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return []event.Event{event.Resize{Size: geom.Vec{X: w, Y: h}}}

	case *tcell.EventFocus:
		return []event.Event{event.Focus{Gained: ev.Focused}}

	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.paste.Reset()
			return nil
		}
		t.pasting = false
		text := t.paste.String()
		t.paste.Reset()
		if text == "" {
			return nil
		}
		return []event.Event{event.Paste{Text: text}}

	case *tcell.EventKey:
		if t.pasting {
			switch ev.Key() {
			case tcell.KeyRune:
				t.paste.WriteRune(ev.Rune())
			case tcell.KeyEnter:
				t.paste.WriteByte('\n')
			case tcell.KeyTab:
				t.paste.WriteByte('\t')
			}
			return nil
		}
		if kp, ok := translateKey(ev); ok {
			return []event.Event{kp}
		}
		return nil

	case *tcell.EventMouse:
		return t.mouse(ev)
	}
	return nil
}

func (t *translator) mouse(ev *tcell.EventMouse) []event.Event {
	x, y := ev.Position()
	pos := geom.Pos{X: x, Y: y}
	mods := translateMods(ev.Modifiers())
	buttons := ev.Buttons()

	var out []event.Event
	if d := scrollOf(buttons); d != (geom.Vec{}) {
		out = append(out, event.Mouse{Kind: event.MouseScroll, Pos: pos, Delta: d, Modifiers: mods})
	}

	button := buttonOf(buttons)
	moved := pos != t.last
	t.last = pos
	decode := func(r event.Report, b event.MouseButton) {
		if m, ok := t.decoder.Update(r, pos, b, mods); ok {
			out = append(out, m)
		}
	}

	switch {
	case button != event.ButtonNone && t.down == event.ButtonNone:
		t.down = button
		if moved {
			out = append(out, event.Mouse{Kind: event.MouseMove, Pos: pos, Modifiers: mods})
		}
		decode(event.ReportDown, button)
	case button != event.ButtonNone:
		if moved {
			decode(event.ReportDrag, t.down)
		}
	case t.down != event.ButtonNone:
		decode(event.ReportUp, t.down)
		t.down = event.ButtonNone
		if moved {
			out = append(out, event.Mouse{Kind: event.MouseMove, Pos: pos, Modifiers: mods})
		}
	case moved:
		out = append(out, event.Mouse{Kind: event.MouseMove, Pos: pos, Modifiers: mods})
	}
	return out
}

func tcellColor(c paint.Color) tcell.Color {
	if i, ok := c.Index(); ok {
		return tcell.PaletteColor(int(i))
	}
	if r, g, b, ok := c.RGBValues(); ok {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.ColorReset
}

func tcellStyle(s paint.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(s.Fg)).
		Background(tcellColor(s.Bg)).
		Bold(s.Attrs&paint.AttrBold != 0).
		Dim(s.Attrs&paint.AttrDim != 0).
		Italic(s.Attrs&paint.AttrItalic != 0).
		Reverse(s.Attrs&paint.AttrReverse != 0).
		StrikeThrough(s.Attrs&paint.AttrStrike != 0)
	if s.Attrs&paint.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	return st
}

// cellRunes splits a grapheme into tcell's main rune and combining runes.
func cellRunes(grapheme string) (rune, []rune) {
	if grapheme == "" {
		return ' ', nil
	}
	g := uniseg.NewGraphemes(grapheme)
	if !g.Next() {
		return ' ', nil
	}
	runes := g.Runes()
	return runes[0], runes[1:]
}
