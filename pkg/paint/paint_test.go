package paint

import (
	"testing"

	"github.com/go-drift/cellui/pkg/geom"
)

func TestCanvasCropClipsWrites(t *testing.T) {
	s := NewSurface(geom.Vec{X: 10, Y: 3})
	c := NewCanvas(s).Crop(geom.RectFromLTWH(2, 1, 3, 1))

	c.Text(geom.Pos{}, "hello", DefaultStyle)

	if got := s.Row(1); got != "  hel     " {
		t.Errorf("row 1 = %q", got)
	}
	if got := s.Row(0); got != "          " {
		t.Errorf("row 0 touched: %q", got)
	}
}

func TestCanvasWideGraphemes(t *testing.T) {
	s := NewSurface(geom.Vec{X: 6, Y: 1})
	c := NewCanvas(s)

	n := c.Text(geom.Pos{}, "日本x", DefaultStyle)
	if n != 5 {
		t.Errorf("advanced %d columns, want 5", n)
	}
	if cell := s.At(geom.Pos{X: 1}); !cell.Continuation {
		t.Error("expected continuation cell after wide grapheme")
	}
	if got := s.Row(0); got != "日本x " {
		t.Errorf("row = %q", got)
	}
}

func TestSurfaceDiff(t *testing.T) {
	a := NewSurface(geom.Vec{X: 4, Y: 2})
	b := NewSurface(geom.Vec{X: 4, Y: 2})
	b.Set(geom.Pos{X: 1, Y: 1}, Cell{Grapheme: "x", Width: 1})

	changes := b.Diff(a)
	if len(changes) != 1 || changes[0].Pos != (geom.Pos{X: 1, Y: 1}) {
		t.Errorf("Diff = %+v", changes)
	}
	if full := b.Diff(nil); len(full) != 8 {
		t.Errorf("Diff(nil) = %d changes, want 8", len(full))
	}
}

func TestBorder(t *testing.T) {
	s := NewSurface(geom.Vec{X: 4, Y: 3})
	NewCanvas(s).Border(s.Rect(), BorderASCII, DefaultStyle)
	want := "+--+\n|  |\n+--+"
	if got := s.String(); got != want {
		t.Errorf("border =\n%s\nwant\n%s", got, want)
	}
}

func TestStyleOver(t *testing.T) {
	base := Style{Fg: White, Bg: Blue}
	top := Style{Fg: Red, Attrs: AttrBold}
	got := top.Over(base)
	if got.Fg != Red || got.Bg != Blue || got.Attrs != AttrBold {
		t.Errorf("Over = %+v", got)
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, ok := c.RGBValues(); !ok || r != 0xff || g != 0x80 || b != 0 {
		t.Errorf("RGBValues = %d %d %d %v", r, g, b, ok)
	}
	if c.Code() != "#ff8000" {
		t.Errorf("Code = %q", c.Code())
	}
	if _, err := Hex("nope"); err == nil {
		t.Error("expected error")
	}
}
