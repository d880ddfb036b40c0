package widgets

import (
	"math"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// List lays its children out in a line and shares the space left over by
// fixed-size children among flexible ones in proportion to their factor.
//
// Children with a relative flow (see [Flow] and [Float]) take no part in the
// line; they are laid out unbounded and anchored against the list's final
// size.
//
// Example:
//
//	widgets.List{
//	    Axis:              geom.AxisHorizontal,
//	    Spacing:           1,
//	    MainAxisAlignment: geom.MainAxisAlignmentSpaceBetween,
//	}.Show(ui, func() {
//	    widgets.Label{Text: "left"}.Show(ui)
//	    widgets.Label{Text: "right"}.Show(ui)
//	})
type List struct {
	Axis geom.Axis
	// Spacing is the fixed gap between consecutive inline children.
	Spacing            int
	MainAxisSize       geom.MainAxisSize
	MainAxisAlignment  geom.MainAxisAlignment
	CrossAxisAlignment geom.CrossAxisAlignment
}

// Show calls the list with children.
func (l List) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, listType, l, children)
}

// Row is a horizontal List with default settings.
func Row(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return List{Axis: geom.AxisHorizontal}.Show(ui, children)
}

// Column is a vertical List with default settings.
func Column(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return List{Axis: geom.AxisVertical}.Show(ui, children)
}

var listType = core.NewType("List", func() core.Updater[List, core.NoResponse] { return &list{} })

type list struct {
	props List
}

func (l *list) Update(props List) core.NoResponse {
	l.props = props
	return core.NoResponse{}
}

func (l *list) Describe() map[string]any {
	return map[string]any{
		"axis":    l.props.Axis.String(),
		"spacing": l.props.Spacing,
		"size":    l.props.MainAxisSize.String(),
		"main":    l.props.MainAxisAlignment.String(),
		"cross":   l.props.CrossAxisAlignment.String(),
	}
}

func (l *list) Layout(ctx *core.LayoutContext, in geom.Constraints) geom.Size {
	p := l.props
	axis := p.Axis
	children := ctx.Children()

	inline := 0
	for _, child := range children {
		if !ctx.Flow(child).IsRelative() {
			inline++
		}
	}

	total := float64(p.Spacing * max(inline-1, 0))
	maxCross := 0.0

	crossMax := axis.Cross(in.MaxSize())
	crossMin := 0.0
	if p.CrossAxisAlignment == geom.CrossAxisAlignmentStretch && !math.IsInf(crossMax, 1) {
		crossMin = crossMax
	}
	mainMax := axis.Main(in.MaxSize())
	if math.IsInf(mainMax, 1) {
		mainMax = axis.Main(in.MinSize())
	}

	var factors []int
	var flexible []core.ID
	for _, child := range children {
		if ctx.Flow(child).IsRelative() {
			continue
		}
		if factor, _ := ctx.Flex(child); factor > 0 {
			factors = append(factors, factor)
			flexible = append(flexible, child)
			continue
		}
		size := ctx.Compute(child, geom.NewConstraints(
			axis.Size(0, crossMin),
			axis.Size(geom.Unbounded, crossMax),
		))
		total += axis.Main(size)
		maxCross = math.Max(maxCross, axis.Cross(size))
	}

	shares := flexShares(math.Max(mainMax-total, 0), factors)
	for i, child := range flexible {
		share := float64(shares[i])
		c := geom.NewConstraints(axis.Size(0, crossMin), axis.Size(share, crossMax))
		if _, fit := ctx.Flex(child); fit == geom.FlexFitTight {
			c = geom.NewConstraints(axis.Size(share, crossMin), axis.Size(share, crossMax))
		}
		size := ctx.Compute(child, c)
		total += axis.Main(size)
		maxCross = math.Max(maxCross, axis.Cross(size))
	}

	crossSize := math.Max(maxCross, axis.Cross(in.MinSize()))
	if crossMin > 0 {
		crossSize = crossMin
	}
	var mainSize float64
	switch inMax := axis.Main(in.MaxSize()); {
	case p.MainAxisSize == geom.MainAxisSizeMin, math.IsInf(inMax, 1):
		mainSize = math.Max(total, axis.Main(in.MinSize()))
	default:
		mainSize = inMax
	}
	container := in.Constrain(axis.Size(mainSize, crossSize))

	if total > axis.Main(container) {
		ctx.WarnOnce("overflow", "list children overflow the main axis",
			"needed", total, "available", axis.Main(container))
	}

	for _, child := range children {
		flow := ctx.Flow(child)
		if !flow.IsRelative() {
			continue
		}
		ctx.Compute(child, geom.UnboundedConstraints())
		ctx.SetPos(child, flow.Position(container))
	}

	leading, between := p.MainAxisAlignment.Spacing(inline, axis.Main(container), total)
	between += float64(p.Spacing)
	next := leading
	containerCross := axis.Cross(container)
	for _, child := range children {
		if ctx.Flow(child).IsRelative() {
			continue
		}
		rect, _ := ctx.GetRect(child)
		size := rect.Size().Size()
		cross := p.CrossAxisAlignment.Offset(containerCross, axis.Cross(size))
		ctx.SetPos(child, axis.Pos(int(math.Floor(next)), int(math.Floor(cross))))
		next += axis.Main(size) + between
	}

	return container
}

// flexShares splits the whole cells of remaining among factors so that the
// shares add up exactly, with rounding spread across the children.
func flexShares(remaining float64, factors []int) []int {
	shares := make([]int, len(factors))
	total := 0
	for _, f := range factors {
		total += f
	}
	if total == 0 || math.IsInf(remaining, 0) {
		return shares
	}
	avail := math.Floor(remaining)
	cum, prev := 0, 0
	for i, f := range factors {
		cum += f
		end := int(math.Floor(float64(cum) * avail / float64(total)))
		shares[i] = end - prev
		prev = end
	}
	return shares
}
