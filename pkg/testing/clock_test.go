package testing

import (
	"testing"
	"time"

	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/testing/internal/testbed"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeClock_AdvanceTo(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	if d := clk.AdvanceTo(start.Add(time.Second)); d != time.Second {
		t.Errorf("AdvanceTo moved %v, want 1s", d)
	}
	if d := clk.AdvanceTo(start); d != 0 {
		t.Errorf("AdvanceTo into the past moved %v", d)
	}
	clk.Advance(-time.Second)
	if got := clk.Now().Sub(start); got != time.Second {
		t.Errorf("clock at %v, want 1s", got)
	}
	if clk.Elapsed() != time.Second {
		t.Errorf("Elapsed() = %v, want 1s", clk.Elapsed())
	}
}

func TestPumpToDeadline(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	frames := 0
	tester.PumpWidget(func(ui *core.UI) {
		frames++
		if frames == 1 {
			ui.RequestRepaintAfter(250 * time.Millisecond)
		}
	})

	ok, err := tester.PumpToDeadline()
	if !ok || err != nil {
		t.Fatalf("PumpToDeadline() = %v, %v", ok, err)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
	if got := tester.Clock().Elapsed(); got != 250*time.Millisecond {
		t.Errorf("clock advanced %v, want 250ms", got)
	}
	if ok, _ := tester.PumpToDeadline(); ok {
		t.Error("PumpToDeadline ran without a scheduled repaint")
	}
}

func TestWidgetTester_InstallsClock(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	start := animation.Now()

	tester.Clock().Advance(500 * time.Millisecond)
	if animation.Since(start) != 500*time.Millisecond {
		t.Error("clock advancement not seen by the animation package")
	}
}

func TestAnimatedBar_ClockAdvance(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(30, 1)
	bar := &testbed.AnimatedBar{Target: 10, Duration: time.Second}
	tester.PumpWidget(func(ui *core.UI) { bar.Show(ui) })

	if got := tester.CaptureScreen().String(); got != "##########\n" {
		t.Fatalf("initial bar = %q", got)
	}

	bar.Target = 20
	tester.Pump()
	tester.Clock().Advance(500 * time.Millisecond)
	tester.Pump()
	if got := tester.CaptureScreen().String(); got != "###############\n" {
		t.Errorf("halfway bar = %q, want 15 cells", got)
	}

	tester.Clock().Advance(600 * time.Millisecond)
	tester.Pump()
	if got := tester.CaptureScreen().String(); got != "####################\n" {
		t.Errorf("final bar = %q, want 20 cells", got)
	}
}

func TestPumpAndSettle_AnimatedBar(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	bar := &testbed.AnimatedBar{Target: 5, Duration: 100 * time.Millisecond}
	tester.PumpWidget(func(ui *core.UI) { bar.Show(ui) })

	bar.Target = 10
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Errorf("expected settle after animation completes, got: %v", err)
	}
	if got := tester.Row(0)[:11]; got != "########## " {
		t.Errorf("settled bar = %q", got)
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(func(ui *core.UI) { ui.RequestRepaint() })

	if err := tester.PumpAndSettle(100 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("PumpAndSettle() = %v, want ErrSettleTimeout", err)
	}
}
