package event

import (
	"testing"

	"github.com/go-drift/cellui/pkg/geom"
)

func TestDecoderClick(t *testing.T) {
	var d MouseDecoder
	p := geom.Pos{X: 3, Y: 4}

	ev, ok := d.Update(ReportDown, p, ButtonPrimary, ModNone)
	if !ok || ev.Kind != MouseHeld {
		t.Fatalf("down = %v, %v; want held", ev, ok)
	}
	ev, ok = d.Update(ReportUp, p, ButtonPrimary, ModNone)
	if !ok || ev.Kind != MouseClick || ev.Button != ButtonPrimary {
		t.Fatalf("up = %v, %v; want click", ev, ok)
	}
	if _, down := d.Pressed(); down {
		t.Error("decoder still pressed after click")
	}
}

func TestDecoderDrag(t *testing.T) {
	var d MouseDecoder
	origin := geom.Pos{X: 1, Y: 1}

	d.Update(ReportDown, origin, ButtonPrimary, ModNone)

	if _, ok := d.Update(ReportDrag, origin, ButtonPrimary, ModNone); ok {
		t.Error("motion at the press cell should not start a drag")
	}

	ev, ok := d.Update(ReportDrag, geom.Pos{X: 4, Y: 1}, ButtonPrimary, ModNone)
	if !ok || ev.Kind != MouseDragStart || ev.Origin != origin {
		t.Fatalf("drag start = %v, %v", ev, ok)
	}

	ev, ok = d.Update(ReportDrag, geom.Pos{X: 6, Y: 2}, ButtonPrimary, ModNone)
	if !ok || ev.Kind != MouseDragHeld || ev.Delta != (geom.Vec{X: 2, Y: 1}) {
		t.Fatalf("drag held = %v, %v", ev, ok)
	}

	ev, ok = d.Update(ReportUp, geom.Pos{X: 6, Y: 2}, ButtonPrimary, ModNone)
	if !ok || ev.Kind != MouseDragRelease {
		t.Fatalf("release = %v, %v; want drag release", ev, ok)
	}
}

func TestDecoderReleaseElsewhereIsNotClick(t *testing.T) {
	var d MouseDecoder
	d.Update(ReportDown, geom.Pos{X: 1, Y: 1}, ButtonPrimary, ModNone)
	if ev, ok := d.Update(ReportUp, geom.Pos{X: 9, Y: 9}, ButtonPrimary, ModNone); ok {
		t.Errorf("unexpected %v", ev)
	}
}

func TestParseKeybind(t *testing.T) {
	tests := []struct {
		in   string
		want Keybind
	}{
		{"q", Keybind{Key: Char('q')}},
		{"ctrl+c", Keybind{Key: Char('c'), Modifiers: ModCtrl}},
		{"shift+tab", Keybind{Key: Named(KeyTab), Modifiers: ModShift}},
		{"f5", Keybind{Key: Named(KeyF5)}},
		{"alt+space", Keybind{Key: Char(' '), Modifiers: ModAlt}},
	}
	for _, tt := range tests {
		got, err := ParseKeybind(tt.in)
		if err != nil {
			t.Errorf("ParseKeybind(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKeybind(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "hyper+x", "ctrl+nothing"} {
		if _, err := ParseKeybind(bad); err == nil {
			t.Errorf("ParseKeybind(%q) should fail", bad)
		}
	}
}

func TestKeybindMatchesExactModifiers(t *testing.T) {
	b := MustKeybind("ctrl+s")
	if !b.Matches(KeyPress{Key: Char('s'), Modifiers: ModCtrl}) {
		t.Error("expected match")
	}
	if b.Matches(KeyPress{Key: Char('s'), Modifiers: ModCtrl | ModShift}) {
		t.Error("extra modifiers should not match")
	}
}
