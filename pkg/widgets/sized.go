package widgets

import (
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// Sized forces an exact width and/or height. A zero field leaves that axis
// to the incoming constraints. The result never leaves the incoming
// constraints.
type Sized struct {
	Width  int
	Height int
}

// Show calls the sized widget with children.
func (s Sized) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, sizedType, s, children)
}

var sizedType = core.NewType("Sized", func() core.Updater[Sized, core.NoResponse] { return &sized{} })

type sized struct {
	props Sized
}

func (s *sized) Update(props Sized) core.NoResponse {
	s.props = props
	return core.NoResponse{}
}

func (s *sized) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	c := in
	if s.props.Width > 0 {
		c.MinWidth, c.MaxWidth = float64(s.props.Width), float64(s.props.Width)
	}
	if s.props.Height > 0 {
		c.MinHeight, c.MaxHeight = float64(s.props.Height), float64(s.props.Height)
	}
	return ctx.DefaultLayout(c.Enforce(in))
}

// Constrained narrows the incoming constraints to Constraints.
type Constrained struct {
	Constraints geom.Constraints
}

// Show calls the constrained widget with children.
func (c Constrained) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, constrainedType, c, children)
}

// MaxSize caps its children at size.
func MaxSize(ui *core.UI, size geom.Size, children func()) core.Response[core.NoResponse] {
	return Constrained{Constraints: geom.Loose(size)}.Show(ui, children)
}

// MinSize keeps its children at least size.
func MinSize(ui *core.UI, size geom.Size, children func()) core.Response[core.NoResponse] {
	return Constrained{Constraints: geom.NewConstraints(size, geom.Size{Width: geom.Unbounded, Height: geom.Unbounded})}.Show(ui, children)
}

var constrainedType = core.NewType("Constrained", func() core.Updater[Constrained, core.NoResponse] { return &constrained{} })

type constrained struct {
	props Constrained
}

func (c *constrained) Update(props Constrained) core.NoResponse {
	c.props = props
	return core.NoResponse{}
}

func (c *constrained) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	return ctx.DefaultLayout(c.props.Constraints.Enforce(in))
}

// Unconstrained lifts the incoming maximum on the axes not marked, so its
// children may overflow. Pair it with [Clip] to keep the overflow hidden.
type Unconstrained struct {
	ConstrainX bool
	ConstrainY bool
}

// Show calls the unconstrained widget with children.
func (u Unconstrained) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, unconstrainedType, u, children)
}

var unconstrainedType = core.NewType("Unconstrained", func() core.Updater[Unconstrained, core.NoResponse] { return &unconstrained{} })

type unconstrained struct {
	props Unconstrained
}

func (u *unconstrained) Update(props Unconstrained) core.NoResponse {
	u.props = props
	return core.NoResponse{}
}

func (u *unconstrained) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	c := geom.UnboundedConstraints()
	if u.props.ConstrainX {
		c.MaxWidth = in.MaxWidth
	}
	if u.props.ConstrainY {
		c.MaxHeight = in.MaxHeight
	}
	size := geom.SizeZero
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, c))
	}
	return in.ConstrainMin(size)
}
