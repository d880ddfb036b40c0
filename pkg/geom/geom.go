// Package geom holds the cell-grid geometry shared by layout, input and paint.
//
// Positions and rectangles are measured in whole terminal cells. Sizes carry
// float64 extents so that constraints can express an unbounded axis and flex
// distribution can split space before it is snapped to cells.
package geom

import "fmt"

// Pos is a cell coordinate. X grows to the right, Y grows downward.
type Pos struct {
	X int
	Y int
}

// Add returns p translated by v.
func (p Pos) Add(v Vec) Pos {
	return Pos{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p.
func (p Pos) Sub(o Pos) Vec {
	return Vec{X: p.X - o.X, Y: p.Y - o.Y}
}

// Vec returns p as a vector from the origin.
func (p Pos) Vec() Vec {
	return Vec{X: p.X, Y: p.Y}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Vec is a cell delta or an integral extent.
type Vec struct {
	X int
	Y int
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Size converts v to a Size.
func (v Vec) Size() Size {
	return Size{Width: float64(v.X), Height: float64(v.Y)}
}

func (v Vec) String() string {
	return fmt.Sprintf("[%d, %d]", v.X, v.Y)
}

// Rect is a half-open cell rectangle: Left and Top are inclusive, Right and
// Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectFromPosSize constructs a Rect from its top-left corner and extent.
func RectFromPosSize(pos Pos, size Vec) Rect {
	return Rect{Left: pos.X, Top: pos.Y, Right: pos.X + size.X, Bottom: pos.Y + size.Y}
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the width of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Min returns the top-left corner.
func (r Rect) Min() Pos {
	return Pos{X: r.Left, Y: r.Top}
}

// Size returns the integral extent of the rectangle.
func (r Rect) Size() Vec {
	return Vec{X: r.Width(), Y: r.Height()}
}

// IsEmpty reports whether the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p falls inside the rectangle.
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec) Rect {
	return Rect{Left: r.Left + v.X, Top: r.Top + v.Y, Right: r.Right + v.X, Bottom: r.Bottom + v.Y}
}

// WithPos returns r moved so its top-left corner is at p, keeping its size.
func (r Rect) WithPos(p Pos) Rect {
	return RectFromPosSize(p, r.Size())
}

// WithSize returns r resized to v, keeping its top-left corner.
func (r Rect) WithSize(v Vec) Rect {
	return RectFromPosSize(r.Min(), v)
}

// Intersect returns the intersection of two rectangles.
// Returns the zero Rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right, other.Right)
	bottom := min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Shrink returns r inset by m. The result never inverts.
func (r Rect) Shrink(m Margin) Rect {
	out := Rect{Left: r.Left + m.Left, Top: r.Top + m.Top, Right: r.Right - m.Right, Bottom: r.Bottom - m.Bottom}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.Left, r.Top, r.Width(), r.Height())
}
