package paint

import (
	"strings"

	"github.com/go-drift/cellui/pkg/geom"
)

// Cell is one grid position. Grapheme is empty for a blank cell; a wide
// grapheme occupies its cell plus Width-1 continuation cells whose
// Continuation flag is set.
type Cell struct {
	Grapheme     string
	Width        int
	Continuation bool
	Style        Style
}

// Blank is an empty default-styled cell.
var Blank = Cell{Width: 1}

// Text returns the printable text of the cell.
func (c Cell) Text() string {
	if c.Continuation {
		return ""
	}
	if c.Grapheme == "" {
		return " "
	}
	return c.Grapheme
}

// Surface is a grid of cells.
type Surface struct {
	size  geom.Vec
	cells []Cell
}

// NewSurface returns a blank surface of the given size.
func NewSurface(size geom.Vec) *Surface {
	s := &Surface{}
	s.Resize(size)
	return s
}

// Size returns the grid extent.
func (s *Surface) Size() geom.Vec { return s.size }

// Rect returns the grid as a rect at the origin.
func (s *Surface) Rect() geom.Rect { return geom.RectFromPosSize(geom.Pos{}, s.size) }

// Resize changes the extent and blanks every cell.
func (s *Surface) Resize(size geom.Vec) {
	size.X, size.Y = max(size.X, 0), max(size.Y, 0)
	s.size = size
	n := size.X * size.Y
	if cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]Cell, n)
	}
	s.Clear()
}

// Clear blanks every cell.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Blank
	}
}

// At returns the cell at p, or Blank outside the grid.
func (s *Surface) At(p geom.Pos) Cell {
	if !s.Rect().Contains(p) {
		return Blank
	}
	return s.cells[p.Y*s.size.X+p.X]
}

// Set stores c at p. Writes outside the grid are dropped.
func (s *Surface) Set(p geom.Pos, c Cell) {
	if !s.Rect().Contains(p) {
		return
	}
	s.cells[p.Y*s.size.X+p.X] = c
}

// Row returns the text of row y with continuation cells skipped.
func (s *Surface) Row(y int) string {
	var sb strings.Builder
	for x := 0; x < s.size.X; x++ {
		sb.WriteString(s.At(geom.Pos{X: x, Y: y}).Text())
	}
	return sb.String()
}

// String returns all rows joined by newlines.
func (s *Surface) String() string {
	rows := make([]string, s.size.Y)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Change is one cell that differs between two surfaces.
type Change struct {
	Pos  geom.Pos
	Cell Cell
}

// Diff returns the cells of s that differ from prev. A size change reports
// every cell.
func (s *Surface) Diff(prev *Surface) []Change {
	var out []Change
	full := prev == nil || prev.size != s.size
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			i := y*s.size.X + x
			if full || s.cells[i] != prev.cells[i] {
				out = append(out, Change{Pos: geom.Pos{X: x, Y: y}, Cell: s.cells[i]})
			}
		}
	}
	return out
}

// CopyFrom makes s an exact copy of o.
func (s *Surface) CopyFrom(o *Surface) {
	s.size = o.size
	s.cells = append(s.cells[:0], o.cells...)
}
