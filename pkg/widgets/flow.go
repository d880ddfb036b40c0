package widgets

import (
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// Flow takes its children out of the enclosing [List]'s line and anchors
// them against the list's final size: the child's origin is
// Anchor*size + Offset.
type Flow struct {
	Anchor geom.Align2
	Offset geom.Dimension2
}

// Show calls the flow widget with children.
func (f Flow) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, flowType, f, children)
}

var flowType = core.NewType("Flow", func() core.Updater[Flow, core.NoResponse] { return &flow{} })

type flow struct {
	props Flow
}

func (f *flow) Update(props Flow) core.NoResponse {
	f.props = props
	return core.NoResponse{}
}

func (f *flow) Flow() geom.Flow { return geom.RelativeFlow(f.props.Anchor, f.props.Offset) }

// Float is an overlay: it opens a new input layer, so its descendants get
// events before anything registered outside it, and it paints after the
// content beneath it. Inside a [List] it is anchored like [Flow].
type Float struct {
	Anchor geom.Align2
	Offset geom.Dimension2
}

// Show calls the float with children.
func (f Float) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, floatType, f, children)
}

var floatType = core.NewType("Float", func() core.Updater[Float, core.NoResponse] { return &floatLayer{} })

type floatLayer struct {
	props Float
}

func (f *floatLayer) Update(props Float) core.NoResponse {
	f.props = props
	return core.NoResponse{}
}

func (f *floatLayer) Flow() geom.Flow { return geom.RelativeFlow(f.props.Anchor, f.props.Offset) }

func (f *floatLayer) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	ctx.NewLayer()
	return ctx.DefaultLayout(in.Loosen())
}

// Clip hides whatever its descendants draw outside its rect and keeps the
// pointer from reaching them there.
func Clip(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, clipType, struct{}{}, children)
}

var clipType = core.NewType("Clip", func() core.Updater[struct{}, core.NoResponse] { return &clip{} })

type clip struct{}

func (*clip) Update(struct{}) core.NoResponse { return core.NoResponse{} }

func (*clip) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	ctx.EnableClipping()
	return ctx.DefaultLayout(in)
}
