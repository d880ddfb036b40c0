package paint

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/go-drift/cellui/pkg/geom"
)

// Canvas is a view of a surface with its own origin and a clip rect in
// surface coordinates. Drawing positions are relative to the origin.
type Canvas struct {
	surface *Surface
	origin  geom.Pos
	clip    geom.Rect
}

// NewCanvas returns a canvas covering the whole surface.
func NewCanvas(s *Surface) Canvas {
	return Canvas{surface: s, clip: s.Rect()}
}

// Crop returns a canvas whose origin is the top-left of r (in surface
// coordinates) and whose clip is r intersected with the current clip.
func (c Canvas) Crop(r geom.Rect) Canvas {
	return Canvas{surface: c.surface, origin: r.Min(), clip: c.clip.Intersect(r)}
}

// Restrict narrows the clip to r without moving the origin.
func (c Canvas) Restrict(r geom.Rect) Canvas {
	c.clip = c.clip.Intersect(r)
	return c
}

// Size returns the visible extent measured from the origin.
func (c Canvas) Size() geom.Vec {
	return geom.Vec{X: max(c.clip.Right-c.origin.X, 0), Y: max(c.clip.Bottom-c.origin.Y, 0)}
}

// Clip returns the clip rect in surface coordinates.
func (c Canvas) Clip() geom.Rect { return c.clip }

// Set writes a cell at a canvas-relative position.
func (c Canvas) Set(p geom.Pos, cell Cell) {
	abs := geom.Pos{X: p.X + c.origin.X, Y: p.Y + c.origin.Y}
	if c.surface == nil || !c.clip.Contains(abs) {
		return
	}
	c.surface.Set(abs, cell)
}

// Get reads a cell at a canvas-relative position.
func (c Canvas) Get(p geom.Pos) Cell {
	if c.surface == nil {
		return Blank
	}
	return c.surface.At(geom.Pos{X: p.X + c.origin.X, Y: p.Y + c.origin.Y})
}

// Fill paints every visible cell with r in style.
func (c Canvas) Fill(r rune, style Style) {
	cell := Cell{Grapheme: string(r), Width: 1, Style: style}
	if r == ' ' {
		cell.Grapheme = ""
	}
	c.each(func(p geom.Pos) { c.Set(p, cell) })
}

// FillBackground changes only the background of every visible cell.
func (c Canvas) FillBackground(bg Color) {
	c.each(func(p geom.Pos) {
		cell := c.Get(p)
		cell.Style.Bg = bg
		c.Set(p, cell)
	})
}

func (c Canvas) each(fn func(geom.Pos)) {
	for y := c.clip.Top; y < c.clip.Bottom; y++ {
		for x := c.clip.Left; x < c.clip.Right; x++ {
			fn(geom.Pos{X: x - c.origin.X, Y: y - c.origin.Y})
		}
	}
}

// Text writes s starting at p, one grapheme cluster per cell run, and
// returns the number of columns advanced. Wide clusters that would be cut by
// the clip edge are replaced with a blank.
func (c Canvas) Text(p geom.Pos, s string, style Style) int {
	x := p.X
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\n" {
			break
		}
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		abs := x + c.origin.X
		if abs+w > c.clip.Right && abs < c.clip.Right {
			c.Set(geom.Pos{X: x, Y: p.Y}, Cell{Width: 1, Style: style})
			x += w
			continue
		}
		c.Set(geom.Pos{X: x, Y: p.Y}, Cell{Grapheme: cluster, Width: w, Style: style})
		for i := 1; i < w; i++ {
			c.Set(geom.Pos{X: x + i, Y: p.Y}, Cell{Continuation: true, Style: style})
		}
		x += w
	}
	return x - p.X
}

// TextWidth returns the display width of s in cells.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most w cells, ending with tail when cut.
func Truncate(s string, w int, tail string) string {
	return runewidth.Truncate(s, w, tail)
}

// BorderRunes are the glyphs of a box border.
type BorderRunes struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Border glyph sets.
var (
	BorderThin    = BorderRunes{'─', '│', '┌', '┐', '└', '┘'}
	BorderRounded = BorderRunes{'─', '│', '╭', '╮', '╰', '╯'}
	BorderDouble  = BorderRunes{'═', '║', '╔', '╗', '╚', '╝'}
	BorderASCII   = BorderRunes{'-', '|', '+', '+', '+', '+'}
)

// Border draws a box outline around r (canvas-relative).
func (c Canvas) Border(r geom.Rect, runes BorderRunes, style Style) {
	if r.Width() < 2 || r.Height() < 2 {
		return
	}
	put := func(x, y int, ch rune) {
		c.Set(geom.Pos{X: x, Y: y}, Cell{Grapheme: string(ch), Width: 1, Style: style})
	}
	for x := r.Left + 1; x < r.Right-1; x++ {
		put(x, r.Top, runes.Horizontal)
		put(x, r.Bottom-1, runes.Horizontal)
	}
	for y := r.Top + 1; y < r.Bottom-1; y++ {
		put(r.Left, y, runes.Vertical)
		put(r.Right-1, y, runes.Vertical)
	}
	put(r.Left, r.Top, runes.TopLeft)
	put(r.Right-1, r.Top, runes.TopRight)
	put(r.Left, r.Bottom-1, runes.BottomLeft)
	put(r.Right-1, r.Bottom-1, runes.BottomRight)
}
