package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

const (
	// DefaultTestWidth is the default width of the test screen in cells.
	DefaultTestWidth = 40
	// DefaultTestHeight is the default height of the test screen in cells.
	DefaultTestHeight = 10

	frameDuration = 16 * time.Millisecond
)

var (
	// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
	ErrSettleTimeout = errors.New("PumpAndSettle timed out: engine kept requesting frames")
	// ErrNoWidget is returned when pumping before PumpWidget.
	ErrNoWidget = errors.New("no widget pumped")
)

// WidgetTester runs an engine without a terminal. It drives the same
// build, layout and paint phases a host does, with a fake clock and an
// in-memory surface.
type WidgetTester struct {
	engine     *core.Engine
	build      func(ui *core.UI)
	clock      *FakeClock
	prevClock  animation.Clock
	start      time.Time
	surface    *paint.Surface
	dispatches []func()
	decoder    event.MouseDecoder
	pointer    geom.Pos
}

// NewWidgetTester creates a tester with a DefaultTestWidth by
// DefaultTestHeight screen. Call Cleanup when done, or use
// NewWidgetTesterWithT instead.
func NewWidgetTester() *WidgetTester {
	clk := NewFakeClock()
	size := geom.Vec{X: DefaultTestWidth, Y: DefaultTestHeight}
	t := &WidgetTester{
		engine:  core.New(geom.RectFromPosSize(geom.Pos{}, size)),
		clock:   clk,
		start:   clk.Now(),
		surface: paint.NewSurface(size),
	}
	t.prevClock = animation.SetClock(clk)
	return t
}

// NewWidgetTesterWithT creates a tester that cleans up via t.Cleanup.
func NewWidgetTesterWithT(t testing.TB) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup drops the widget tree and restores the animation clock.
func (t *WidgetTester) Cleanup() {
	t.engine.Reset()
	t.build = nil
	animation.SetClock(t.prevClock)
}

// SetSize resizes the test screen, as a terminal resize would.
func (t *WidgetTester) SetSize(width, height int) {
	t.engine.Handle(event.Resize{Size: geom.Vec{X: width, Y: height}})
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// Engine returns the engine under test.
func (t *WidgetTester) Engine() *core.Engine {
	return t.engine
}

// PumpWidget replaces the tree with build and runs one frame. Widget state
// from a previous PumpWidget is discarded.
func (t *WidgetTester) PumpWidget(build func(ui *core.UI)) error {
	t.engine.Reset()
	t.build = build
	return t.Pump()
}

// Pump runs a single frame: dispatches, build, layout and paint.
func (t *WidgetTester) Pump() error {
	if t.build == nil {
		return ErrNoWidget
	}
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}

	t.tick()
	t.engine.Frame(t.build)

	if size := t.engine.Rect().Size(); size != t.surface.Size() {
		t.surface.Resize(size)
	} else {
		t.surface.Clear()
	}
	t.engine.Paint(t.surface)
	return nil
}

// PumpAndSettle runs frames until the engine stops asking for them or the
// timeout is reached. Each frame advances the fake clock by 16ms.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// PumpToDeadline advances the fake clock to the engine's next scheduled
// repaint and runs that frame. It reports false, without pumping, when no
// repaint is scheduled.
func (t *WidgetTester) PumpToDeadline() (bool, error) {
	t.tick()
	at, ok := t.engine.Deadline()
	if !ok {
		return false, nil
	}
	t.clock.AdvanceTo(t.start.Add(at))
	return true, t.Pump()
}

func (t *WidgetTester) needsWork() bool {
	if len(t.dispatches) > 0 {
		return true
	}
	t.tick()
	if t.engine.NeedsRepaint() {
		return true
	}
	_, scheduled := t.engine.Deadline()
	return scheduled
}

func (t *WidgetTester) tick() {
	t.engine.Tick(animation.Since(t.start))
}

// Dispatch queues a callback for the next frame, mirroring
// engine.Driver.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Surface returns the surface painted by the last frame.
func (t *WidgetTester) Surface() *paint.Surface {
	return t.surface
}

// Row returns row y of the last frame as text.
func (t *WidgetTester) Row(y int) string {
	return t.surface.Row(y)
}

// Rows returns every row of the last frame.
func (t *WidgetTester) Rows() []string {
	rows := make([]string, t.surface.Size().Y)
	for y := range rows {
		rows[y] = t.surface.Row(y)
	}
	return rows
}

// Find evaluates a finder against the tree of the last frame.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	snap := t.engine.Snapshot()
	if snap.Root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  finder.Evaluate(snap.Root),
		finder: finder,
	}
}
