package geom

import (
	"fmt"
	"math"
)

// Align2 is an anchor inside a box, with 0 the start edge and 1 the end edge
// on each axis.
type Align2 struct {
	X float64
	Y float64
}

// Common anchors.
var (
	AlignTopLeft      = Align2{0, 0}
	AlignTopCenter    = Align2{0.5, 0}
	AlignTopRight     = Align2{1, 0}
	AlignCenterLeft   = Align2{0, 0.5}
	AlignCenter       = Align2{0.5, 0.5}
	AlignCenterRight  = Align2{1, 0.5}
	AlignBottomLeft   = Align2{0, 1}
	AlignBottomCenter = Align2{0.5, 1}
	AlignBottomRight  = Align2{1, 1}
)

// Scale returns the anchor point inside a box of the given size.
func (a Align2) Scale(s Size) Size {
	return Size{Width: s.Width * a.X, Height: s.Height * a.Y}
}

// Place returns the offset of a child of size inner aligned within outer.
func (a Align2) Place(inner, outer Vec) Vec {
	return Vec{X: int(float64(outer.X-inner.X) * a.X), Y: int(float64(outer.Y-inner.Y) * a.Y)}
}

func (a Align2) String() string {
	return fmt.Sprintf("align(%g, %g)", a.X, a.Y)
}

// Dimension is a length expressed as a ratio of the parent extent plus an
// absolute cell count.
type Dimension struct {
	Ratio    float64
	Absolute int
}

// Ratio returns a purely relative dimension.
func Ratio(r float64) Dimension {
	return Dimension{Ratio: r}
}

// Cells returns a purely absolute dimension.
func Cells(n int) Dimension {
	return Dimension{Absolute: n}
}

// Resolve returns the dimension against a parent extent.
func (d Dimension) Resolve(parent float64) float64 {
	return parent*d.Ratio + float64(d.Absolute)
}

// Dimension2 pairs two dimensions.
type Dimension2 struct {
	X Dimension
	Y Dimension
}

// Absolute2 returns a Dimension2 with absolute cell offsets.
func Absolute2(x, y int) Dimension2 {
	return Dimension2{X: Cells(x), Y: Cells(y)}
}

// Resolve returns both dimensions against a parent size.
func (d Dimension2) Resolve(parent Size) Size {
	return Size{Width: d.X.Resolve(parent.Width), Height: d.Y.Resolve(parent.Height)}
}

// Flow decides whether a child takes part in its container's sequential
// layout or is placed relative to the container's final size.
type Flow struct {
	Relative bool
	Anchor   Align2
	Offset   Dimension2
}

// FlowInline is the default flow.
var FlowInline = Flow{}

// RelativeFlow anchors a child against its container.
func RelativeFlow(anchor Align2, offset Dimension2) Flow {
	return Flow{Relative: true, Anchor: anchor, Offset: offset}
}

// IsRelative reports whether the child is excluded from sequential layout.
func (f Flow) IsRelative() bool {
	return f.Relative
}

// Position returns the child origin within a container of the given size.
func (f Flow) Position(container Size) Pos {
	s := f.Anchor.Scale(container).Add(f.Offset.Resolve(container))
	return Pos{X: roundCell(s.Width), Y: roundCell(s.Height)}
}

func roundCell(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v))
}

func (f Flow) String() string {
	if !f.Relative {
		return "inline"
	}
	return fmt.Sprintf("relative(%v, %+v)", f.Anchor, f.Offset)
}

// Margin is an inset on each edge, in cells.
type Margin struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Uniform returns the same inset on every edge.
func Uniform(n int) Margin {
	return Margin{Left: n, Top: n, Right: n, Bottom: n}
}

// Symmetric returns horizontal and vertical insets.
func Symmetric(horizontal, vertical int) Margin {
	return Margin{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Sum returns the total horizontal and vertical inset.
func (m Margin) Sum() Size {
	return Size{Width: float64(m.Left + m.Right), Height: float64(m.Top + m.Bottom)}
}

// TopLeft returns the offset applied to a child.
func (m Margin) TopLeft() Pos {
	return Pos{X: m.Left, Y: m.Top}
}
