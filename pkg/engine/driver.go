// Package engine drives frames for terminal hosts. A Driver owns the frame
// clock, paces frames to a target rate, paints into a surface and records
// frame timings; hosts feed it events and flush the surface it paints.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// DefaultFPS caps the frame rate when none is configured.
const DefaultFPS = 60

// FrameHook runs after every painted frame, before the host flushes.
type FrameHook func(e *core.Engine, s *paint.Surface)

// Driver runs an app's build function against an engine. It is not safe for
// concurrent use except for Dispatch and Wake.
type Driver struct {
	engine   *core.Engine
	build    func(ui *core.UI)
	surface  *paint.Surface
	interval time.Duration
	start    time.Time
	last     time.Time
	framed   bool

	events   int
	dispatch time.Duration

	trace *FrameTraceBuffer
	hooks []FrameHook

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}

	log *slog.Logger
}

// NewDriver returns a driver for e that runs build at most fps times per
// second. fps <= 0 selects DefaultFPS.
func NewDriver(e *core.Engine, build func(ui *core.UI), fps int) *Driver {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return &Driver{
		engine:   e,
		build:    build,
		surface:  paint.NewSurface(surfaceSize(e.Rect())),
		interval: interval,
		start:    animation.Now(),
		trace:    NewFrameTraceBuffer(0, interval),
		wake:     make(chan struct{}, 1),
		log:      logger.WithComponent("driver"),
	}
}

func surfaceSize(r geom.Rect) geom.Vec {
	return geom.Vec{X: max(r.Right, 0), Y: max(r.Bottom, 0)}
}

// Engine returns the driven engine.
func (d *Driver) Engine() *core.Engine { return d.engine }

// Surface returns the surface the last frame was painted into.
func (d *Driver) Surface() *paint.Surface { return d.surface }

// Trace returns the frame timing buffer.
func (d *Driver) Trace() *FrameTraceBuffer { return d.trace }

// Interval returns the minimum time between frames.
func (d *Driver) Interval() time.Duration { return d.interval }

// OnFrame adds a hook run after each painted frame.
func (d *Driver) OnFrame(h FrameHook) {
	d.hooks = append(d.hooks, h)
}

// Elapsed returns the frame clock: time since the driver was created.
func (d *Driver) Elapsed() time.Duration {
	return animation.Since(d.start)
}

// Dispatch schedules fn to run on the frame goroutine before the next frame
// and wakes the host. Safe to call from any goroutine.
func (d *Driver) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	d.dispatchMu.Lock()
	d.dispatchQueue = append(d.dispatchQueue, fn)
	d.dispatchMu.Unlock()
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Wake delivers a value after Dispatch queued work.
func (d *Driver) Wake() <-chan struct{} { return d.wake }

func (d *Driver) drainDispatchQueue() []func() {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()
	callbacks := d.dispatchQueue
	d.dispatchQueue = nil
	return callbacks
}

func (d *Driver) hasDispatch() bool {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()
	return len(d.dispatchQueue) > 0
}

// Handle feeds one host event to the engine and reports whether a widget
// sank it.
func (d *Driver) Handle(ev event.Event) bool {
	begin := animation.Now()
	d.engine.Tick(d.Elapsed())
	sunk := d.engine.Handle(ev)
	d.events++
	d.dispatch += animation.Since(begin)
	return sunk
}

// Resize sets the client area to w by h cells at the origin.
func (d *Driver) Resize(w, h int) {
	d.Handle(event.Resize{Size: geom.Vec{X: w, Y: h}})
}

// Step runs queued callbacks and, when the engine wants a frame and the
// frame interval has passed, runs one frame and flushes it. It reports
// whether a frame ran and returns the commands the frame queued.
func (d *Driver) Step(flush func(s *paint.Surface)) (bool, []core.Command) {
	for _, fn := range d.drainDispatchQueue() {
		fn()
	}
	d.engine.Tick(d.Elapsed())
	if d.framed {
		if !d.engine.NeedsRepaint() {
			return false, nil
		}
		if animation.Since(d.last) < d.interval {
			return false, nil
		}
	}
	return true, d.Frame(flush)
}

// Frame runs one frame unconditionally: build, layout, paint, hooks, then
// flush. It returns the commands the frame queued.
func (d *Driver) Frame(flush func(s *paint.Surface)) []core.Command {
	begin := animation.Now()
	d.engine.Tick(d.Elapsed())
	d.engine.Frame(d.build)
	built := animation.Now()

	if size := surfaceSize(d.engine.Rect()); size != d.surface.Size() {
		d.surface.Resize(size)
	} else {
		d.surface.Clear()
	}
	d.engine.Paint(d.surface)
	for _, h := range d.hooks {
		h(d.engine, d.surface)
	}
	painted := animation.Now()

	if flush != nil {
		flush(d.surface)
	}
	flushed := animation.Now()

	cmds := d.engine.Commands()
	total := flushed.Sub(begin)
	d.trace.Add(FrameSample{
		Frame:     d.engine.FrameCount(),
		Timestamp: begin.UnixMilli(),
		FrameMs:   durationToMillis(total),
		Phases: FramePhaseTimings{
			DispatchMs: durationToMillis(d.dispatch),
			BuildMs:    durationToMillis(built.Sub(begin)),
			PaintMs:    durationToMillis(painted.Sub(built)),
			FlushMs:    durationToMillis(flushed.Sub(painted)),
		},
		Counts: FrameCounts{
			Nodes:    d.engine.Len(),
			Events:   d.events,
			Commands: len(cmds),
		},
	})
	d.log.Debug("frame", "frame", d.engine.FrameCount(), "nodes", d.engine.Len(), "events", d.events, "ms", durationToMillis(total))

	d.events, d.dispatch = 0, 0
	d.last = begin
	d.framed = true
	return cmds
}

// NextWake returns how long the host may sleep before calling Step again.
// It reports false when nothing is scheduled and the host can wait for the
// next event.
func (d *Driver) NextWake() (time.Duration, bool) {
	if d.hasDispatch() || !d.framed {
		return 0, true
	}
	now := d.Elapsed()
	d.engine.Tick(now)
	if d.engine.NeedsRepaint() {
		return max(d.interval-animation.Since(d.last), 0), true
	}
	if at, ok := d.engine.Deadline(); ok {
		return max(at-now, 0), true
	}
	return 0, false
}
