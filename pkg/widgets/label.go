package widgets

import (
	"strings"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// Label draws text. Each line of Text is one row; the label is as wide as
// its widest line in cells. Lines wider than the label are cut, with an
// ellipsis when Ellipsis is set.
type Label struct {
	Text     string
	Style    paint.Style
	Ellipsis bool
}

// Show draws the label.
func (l Label) Show(ui *core.UI) core.Response[core.NoResponse] {
	return core.Show(ui, labelType, l)
}

// Text draws s in the default style.
func Text(ui *core.UI, s string) core.Response[core.NoResponse] {
	return Label{Text: s}.Show(ui)
}

var labelType = core.NewType("Label", func() core.Updater[Label, core.NoResponse] { return &label{} })

type label struct {
	props Label
	lines []string
	width int
}

func (l *label) Update(props Label) core.NoResponse {
	if props.Text != l.props.Text || l.lines == nil {
		l.lines = strings.Split(props.Text, "\n")
		l.width = 0
		for _, line := range l.lines {
			l.width = max(l.width, paint.TextWidth(line))
		}
	}
	l.props = props
	return core.NoResponse{}
}

func (l *label) Describe() map[string]any {
	return map[string]any{"text": l.props.Text}
}

func (l *label) Layout(_ *core.LayoutContext, in geom.Constraints) geom.Size {
	return in.Constrain(geom.Size{Width: float64(l.width), Height: float64(len(l.lines))})
}

func (l *label) Paint(ctx *core.PaintContext) {
	canvas := ctx.Canvas()
	w := ctx.Rect().Width()
	for y, line := range l.lines {
		if paint.TextWidth(line) > w {
			tail := ""
			if l.props.Ellipsis {
				tail = "…"
			}
			line = paint.Truncate(line, w, tail)
		}
		canvas.Text(geom.Pos{Y: y}, line, l.props.Style)
	}
}

// Filled paints its whole rect and then its children. With a zero Rune it
// only sets the background color, keeping whatever text is beneath.
type Filled struct {
	Rune       rune
	Style      paint.Style
	Background paint.Color
	// MinSize is the size the widget asks for when it has no children.
	MinSize geom.Size
}

// Show calls the filled widget with children.
func (f Filled) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, filledType, f, children)
}

var filledType = core.NewType("Filled", func() core.Updater[Filled, core.NoResponse] { return &filled{} })

type filled struct {
	props Filled
}

func (f *filled) Update(props Filled) core.NoResponse {
	f.props = props
	return core.NoResponse{}
}

func (f *filled) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	size := f.props.MinSize.Min(in.MaxSize())
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, in))
	}
	return in.ConstrainMin(size)
}

func (f *filled) Paint(ctx *core.PaintContext) {
	canvas := ctx.Canvas()
	switch {
	case f.props.Rune != 0:
		style := f.props.Style
		if !f.props.Background.IsReset() {
			style = style.Background(f.props.Background)
		}
		canvas.Fill(f.props.Rune, style)
	case !f.props.Background.IsReset():
		canvas.FillBackground(f.props.Background)
	}
	ctx.PaintChildren()
}

// Border draws a box around its children, which sit one cell inside it.
// A non-empty Title is drawn on the top edge.
type Border struct {
	Runes paint.BorderRunes
	Style paint.Style
	Title string
	// TitleStyle defaults to Style.
	TitleStyle *paint.Style
}

// Show calls the border with children.
func (b Border) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	if b.Runes == (paint.BorderRunes{}) {
		b.Runes = paint.BorderThin
	}
	return core.ShowChildren(ui, borderType, b, func() {
		Margin{Margin: geom.Uniform(1)}.Show(ui, children)
	})
}

var borderType = core.NewType("Border", func() core.Updater[Border, core.NoResponse] { return &border{} })

type border struct {
	props Border
}

func (b *border) Update(props Border) core.NoResponse {
	b.props = props
	return core.NoResponse{}
}

func (b *border) Describe() map[string]any {
	return map[string]any{"title": b.props.Title}
}

func (b *border) Paint(ctx *core.PaintContext) {
	canvas := ctx.Canvas()
	size := ctx.Rect().Size()
	canvas.Border(geom.RectFromPosSize(geom.Pos{}, size), b.props.Runes, b.props.Style)
	if b.props.Title != "" && size.X > 2 {
		style := b.props.Style
		if b.props.TitleStyle != nil {
			style = *b.props.TitleStyle
		}
		canvas.Text(geom.Pos{X: 1}, paint.Truncate(b.props.Title, size.X-2, "…"), style)
	}
	ctx.PaintChildren()
}
