package animation

import (
	"math"

	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// Tween interpolates between Begin and End.
type Tween[T any] struct {
	Begin T
	End   T
	// Lerp receives progress in [0, 1]. A nil Lerp snaps to End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, clampUnit(t))
}

// Transform evaluates the tween at the controller's current value.
func (tw Tween[T]) Transform(c *Controller) T {
	return tw.Evaluate(c.Value)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpInt interpolates whole cells, rounding to the nearest one.
func LerpInt(a, b int, t float64) int {
	return int(math.Round(LerpFloat64(float64(a), float64(b), t)))
}

// LerpPos interpolates a cell position.
func LerpPos(a, b geom.Pos, t float64) geom.Pos {
	return geom.Pos{X: LerpInt(a.X, b.X, t), Y: LerpInt(a.Y, b.Y, t)}
}

// LerpColor blends two RGB colors channel by channel. Palette and reset
// colors cannot blend and switch at the midpoint.
func LerpColor(a, b paint.Color, t float64) paint.Color {
	ar, ag, ab, aok := a.RGBValues()
	br, bg, bb, bok := b.RGBValues()
	if !aok || !bok {
		if t < 0.5 {
			return a
		}
		return b
	}
	return paint.RGB(
		uint8(LerpInt(int(ar), int(br), t)),
		uint8(LerpInt(int(ag), int(bg), t)),
		uint8(LerpInt(int(ab), int(bb), t)),
	)
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) Tween[float64] {
	return Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenInt creates a tween for cell counts.
func TweenInt(begin, end int) Tween[int] {
	return Tween[int]{Begin: begin, End: end, Lerp: LerpInt}
}

// TweenPos creates a tween for positions.
func TweenPos(begin, end geom.Pos) Tween[geom.Pos] {
	return Tween[geom.Pos]{Begin: begin, End: end, Lerp: LerpPos}
}

// TweenColor creates a tween for colors.
func TweenColor(begin, end paint.Color) Tween[paint.Color] {
	return Tween[paint.Color]{Begin: begin, End: end, Lerp: LerpColor}
}
