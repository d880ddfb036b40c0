// Package testing provides a headless widget tester for cellui.
//
// # Quick Start
//
// Create a tester, pump a build function, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := cuitest.NewWidgetTesterWithT(t)
//	    tester.SetSize(20, 3)
//	    tester.PumpWidget(counter)
//
//	    tester.Click(cuitest.ByText("+"))
//	    tester.Pump()
//
//	    if got := tester.Row(0); got != "count: 1" {
//	        t.Errorf("row = %q", got)
//	    }
//	}
//
// # Golden Screens
//
// Compare the painted screen against a golden file:
//
//	tester.CaptureScreen().MatchesFile(t, "testdata/counter.golden")
//
// Update golden files with:
//
//	CELLUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// The tester swaps the animation clock for a FakeClock until cleanup.
// Advance it by hand, or jump straight to the next repaint a widget asked
// for with RequestRepaintAfter:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
//	tester.PumpToDeadline()
//
// PumpAndSettle steps 16ms frames until nothing is animating or scheduled.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import cuitest "github.com/go-drift/cellui/pkg/testing"
package testing
