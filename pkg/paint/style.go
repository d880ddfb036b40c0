// Package paint provides the cell surface widgets draw into.
package paint

import "fmt"

type colorKind uint8

const (
	colorReset colorKind = iota
	colorIndexed
	colorRGB
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

// Reset is the terminal default color.
var Reset = Color{}

// Indexed returns a palette color.
func Indexed(n uint8) Color {
	return Color{kind: colorIndexed, index: n}
}

// RGB returns a true-color value.
func RGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// Hex parses "#rrggbb".
func Hex(s string) (Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return Reset, fmt.Errorf("paint: invalid hex color %q: %w", s, err)
	}
	return RGB(r, g, b), nil
}

// Basic palette colors.
var (
	Black   = Indexed(0)
	Red     = Indexed(1)
	Green   = Indexed(2)
	Yellow  = Indexed(3)
	Blue    = Indexed(4)
	Magenta = Indexed(5)
	Cyan    = Indexed(6)
	White   = Indexed(7)
)

// IsReset reports whether c is the terminal default.
func (c Color) IsReset() bool { return c.kind == colorReset }

// Index returns the palette index of an indexed color.
func (c Color) Index() (uint8, bool) { return c.index, c.kind == colorIndexed }

// RGBValues returns the channels of a true-color value.
func (c Color) RGBValues() (r, g, b uint8, ok bool) { return c.r, c.g, c.b, c.kind == colorRGB }

// Code formats c for string-based color APIs such as lipgloss: a palette
// index in decimal or "#rrggbb". Reset formats as "".
func (c Color) Code() string {
	switch c.kind {
	case colorIndexed:
		return fmt.Sprintf("%d", c.index)
	case colorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	default:
		return ""
	}
}

func (c Color) String() string {
	if c.kind == colorReset {
		return "reset"
	}
	return c.Code()
}

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrStrike
)

// Style is the color and attribute set of a cell.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultStyle uses the terminal defaults.
var DefaultStyle = Style{}

// Foreground returns s with the foreground replaced.
func (s Style) Foreground(c Color) Style { s.Fg = c; return s }

// Background returns s with the background replaced.
func (s Style) Background(c Color) Style { s.Bg = c; return s }

// With returns s with attrs added.
func (s Style) With(attrs Attr) Style { s.Attrs |= attrs; return s }

// Over layers s on top of base: unset colors fall through to base.
func (s Style) Over(base Style) Style {
	out := base
	if !s.Fg.IsReset() {
		out.Fg = s.Fg
	}
	if !s.Bg.IsReset() {
		out.Bg = s.Bg
	}
	out.Attrs |= s.Attrs
	return out
}
