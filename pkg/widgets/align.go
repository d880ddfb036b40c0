package widgets

import (
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// Align takes all the space it is offered and places its children inside
// it at Align, each under loose constraints.
type Align struct {
	Align geom.Align2
}

// Show calls the align widget with children.
func (a Align) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, alignType, a, children)
}

// Center centers its children.
func Center(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return Align{Align: geom.AlignCenter}.Show(ui, children)
}

var alignType = core.NewType("Align", func() core.Updater[Align, core.NoResponse] { return &align{} })

type align struct {
	props Align
}

func (a *align) Update(props Align) core.NoResponse {
	a.props = props
	return core.NoResponse{}
}

func (a *align) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	children := ctx.Children()
	size := in.Biggest()
	sizes := make([]geom.Size, len(children))
	for i, child := range children {
		sizes[i] = ctx.Compute(child, in.Loosen())
		size = size.Max(sizes[i])
	}
	outer := in.Constrain(size).Cells()
	for i, child := range children {
		ctx.SetPos(child, geom.Pos{}.Add(a.props.Align.Place(sizes[i].Cells(), outer)))
	}
	return size
}

// Offset places its children at a fixed position inside itself.
type Offset struct {
	Pos geom.Pos
}

// Show calls the offset widget with children.
func (o Offset) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, offsetType, o, children)
}

var offsetType = core.NewType("Offset", func() core.Updater[Offset, core.NoResponse] { return &offset{} })

type offset struct {
	props Offset
}

func (o *offset) Update(props Offset) core.NoResponse {
	o.props = props
	return core.NoResponse{}
}

func (o *offset) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	size := in.Biggest()
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, in.Loosen()))
		ctx.SetPos(child, o.props.Pos)
	}
	return size
}

// Margin insets its children.
type Margin struct {
	Margin geom.Margin
}

// Show calls the margin widget with children.
func (m Margin) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, marginType, m, children)
}

var marginType = core.NewType("Margin", func() core.Updater[Margin, core.NoResponse] { return &margin{} })

type margin struct {
	props Margin
}

func (m *margin) Update(props Margin) core.NoResponse {
	m.props = props
	return core.NoResponse{}
}

func (m *margin) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	inset := m.props.Margin.Sum()
	inner := in.Deflate(inset)
	size := inset
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, inner).Add(inset))
		ctx.SetPos(child, m.props.Margin.TopLeft())
	}
	return in.ConstrainMin(size)
}
