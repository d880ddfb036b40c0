package testbed

import (
	"time"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/widgets"
)

// AnimatedBar is a one-row bar of '#' whose width eases linearly toward
// Target over Duration.
type AnimatedBar struct {
	Target   int
	Duration time.Duration
}

// Show draws the bar.
func (b *AnimatedBar) Show(ui *core.UI) {
	w := ui.AnimateValue(b, float64(b.Target), b.Duration)
	widgets.Align{}.Show(ui, func() {
		widgets.Sized{Width: int(w + 0.5), Height: 1}.Show(ui, func() {
			widgets.Filled{Rune: '#'}.Show(ui, nil)
		})
	})
}
