// Package testbed provides small widgets for exercising the tester.
package testbed

import (
	"fmt"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/widgets"
)

// Counter shows a count and a "+" button that increments it.
type Counter struct {
	Count int
}

// Show draws the counter.
func (c *Counter) Show(ui *core.UI) {
	widgets.Column(ui, func() {
		widgets.Text(ui, fmt.Sprintf("count: %d", c.Count))
		if widgets.OnClick(ui, func() { widgets.Text(ui, "+") }).Value.Clicked {
			c.Count++
		}
	})
}
