package geom

import (
	"fmt"
	"math"
)

// Unbounded is the extent of an axis with no upper limit.
var Unbounded = math.Inf(1)

// Size represents width and height extents in cells.
type Size struct {
	Width  float64
	Height float64
}

// SizeZero is the empty size.
var SizeZero = Size{}

// Max returns the component-wise maximum.
func (s Size) Max(o Size) Size {
	return Size{Width: math.Max(s.Width, o.Width), Height: math.Max(s.Height, o.Height)}
}

// Min returns the component-wise minimum.
func (s Size) Min(o Size) Size {
	return Size{Width: math.Min(s.Width, o.Width), Height: math.Min(s.Height, o.Height)}
}

// Add returns s + o.
func (s Size) Add(o Size) Size {
	return Size{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

// IsFinite reports whether both extents are bounded.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Cells snaps s to whole cells, rounding up. Unbounded or negative extents
// become zero.
func (s Size) Cells() Vec {
	return Vec{X: toCells(s.Width), Y: toCells(s.Height)}
}

func toCells(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Constraints is a min/max box passed down during layout. A node must return
// a size within the bounds.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that allow exactly size.
func Tight(size Size) Constraints {
	return Constraints{MinWidth: size.Width, MaxWidth: size.Width, MinHeight: size.Height, MaxHeight: size.Height}
}

// Loose returns constraints from zero up to size.
func Loose(size Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// NewConstraints builds constraints from a minimum and maximum size.
func NewConstraints(minSize, maxSize Size) Constraints {
	return Constraints{MinWidth: minSize.Width, MaxWidth: maxSize.Width, MinHeight: minSize.Height, MaxHeight: maxSize.Height}
}

// UnboundedConstraints allows any size.
func UnboundedConstraints() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// MinSize returns the minimum corner.
func (c Constraints) MinSize() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// MaxSize returns the maximum corner.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	return Size{Width: c.ConstrainWidth(size.Width), Height: c.ConstrainHeight(size.Height)}
}

// ConstrainMin raises size to the minimum without applying the maximum.
func (c Constraints) ConstrainMin(size Size) Size {
	return size.Max(c.MinSize())
}

// ConstrainWidth clamps a width into [MinWidth, MaxWidth].
func (c Constraints) ConstrainWidth(w float64) float64 {
	return math.Min(math.Max(w, c.MinWidth), c.MaxWidth)
}

// ConstrainHeight clamps a height into [MinHeight, MaxHeight].
func (c Constraints) ConstrainHeight(h float64) float64 {
	return math.Min(math.Max(h, c.MinHeight), c.MaxHeight)
}

// Loosen drops the minimum.
func (c Constraints) Loosen() Constraints {
	return Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Deflate shrinks both bounds by the given extent, never below zero.
func (c Constraints) Deflate(by Size) Constraints {
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-by.Width),
		MaxWidth:  math.Max(0, c.MaxWidth-by.Width),
		MinHeight: math.Max(0, c.MinHeight-by.Height),
		MaxHeight: math.Max(0, c.MaxHeight-by.Height),
	}
}

// Enforce clamps c so it fits inside outer.
func (c Constraints) Enforce(outer Constraints) Constraints {
	clamp := func(v, lo, hi float64) float64 { return math.Min(math.Max(v, lo), hi) }
	return Constraints{
		MinWidth:  clamp(c.MinWidth, outer.MinWidth, outer.MaxWidth),
		MaxWidth:  clamp(c.MaxWidth, outer.MinWidth, outer.MaxWidth),
		MinHeight: clamp(c.MinHeight, outer.MinHeight, outer.MaxHeight),
		MaxHeight: clamp(c.MaxHeight, outer.MinHeight, outer.MaxHeight),
	}
}

// IsTight reports whether min equals max on both axes.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// Biggest returns the largest size that satisfies the constraints, falling
// back to the minimum on an unbounded axis.
func (c Constraints) Biggest() Size {
	w, h := c.MaxWidth, c.MaxHeight
	if math.IsInf(w, 1) {
		w = c.MinWidth
	}
	if math.IsInf(h, 1) {
		h = c.MinHeight
	}
	return Size{Width: w, Height: h}
}

func (c Constraints) String() string {
	return fmt.Sprintf("w[%g..%g] h[%g..%g]", c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight)
}
