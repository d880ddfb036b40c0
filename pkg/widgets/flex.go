package widgets

import (
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// Flex marks its children as one flexible slot of the enclosing [List].
//
// After fixed-size siblings are laid out, the list shares the remaining main
// axis space among flexible slots by Factor. A tight fit forces the slot to
// its whole share; a loose fit lets it be smaller.
type Flex struct {
	Factor int
	Fit    geom.FlexFit
}

// Show calls the flex slot with children.
func (f Flex) Show(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return core.ShowChildren(ui, flexType, f, children)
}

// Expanded fills all the space the enclosing list can give it.
func Expanded(ui *core.UI, children func()) core.Response[core.NoResponse] {
	return Flex{Factor: 1, Fit: geom.FlexFitTight}.Show(ui, children)
}

// Spacer takes a share of free space and draws nothing.
func Spacer(ui *core.UI, factor int) core.Response[core.NoResponse] {
	return core.Show(ui, flexType, Flex{Factor: max(factor, 1), Fit: geom.FlexFitTight})
}

var flexType = core.NewType("Flex", func() core.Updater[Flex, core.NoResponse] { return &flex{} })

type flex struct {
	props Flex
}

func (f *flex) Update(props Flex) core.NoResponse {
	f.props = props
	return core.NoResponse{}
}

func (f *flex) Flex() (int, geom.FlexFit) { return f.props.Factor, f.props.Fit }

func (f *flex) Describe() map[string]any {
	return map[string]any{"factor": f.props.Factor, "fit": f.props.Fit.String()}
}
