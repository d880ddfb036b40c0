// Package terminal runs an app on a terminal through tcell.
//
//	host, err := terminal.New(nil, terminal.Options{Title: "demo", Mouse: terminal.MouseDrag}, build)
//	if err != nil {
//	    return err
//	}
//	return host.Run(ctx)
package terminal

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/engine"
	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// MouseMode selects how much pointer reporting the terminal is asked for.
type MouseMode int

const (
	MouseOff MouseMode = iota
	// MouseButtons reports presses, releases and the wheel.
	MouseButtons
	// MouseDrag adds motion while a button is down.
	MouseDrag
	// MouseMotion reports all motion, which hover needs.
	MouseMotion
)

func (m MouseMode) String() string {
	switch m {
	case MouseOff:
		return "off"
	case MouseButtons:
		return "buttons"
	case MouseDrag:
		return "drag"
	case MouseMotion:
		return "motion"
	}
	return "MouseMode(" + strconv.Itoa(int(m)) + ")"
}

// DefaultQuitKeys stop the app unless a widget sinks them.
var DefaultQuitKeys = []event.Keybind{{Key: event.Char('c'), Modifiers: event.ModCtrl}}

// Options configures a Host.
type Options struct {
	Title string
	Mouse MouseMode
	Paste bool
	Focus bool
	// FPS caps the frame rate. Zero means engine.DefaultFPS.
	FPS int
	// QuitKeys stop the app when no widget sinks them. Nil means
	// DefaultQuitKeys; an empty slice disables them.
	QuitKeys []event.Keybind
}

// Host owns a tcell screen and drives an engine on it.
type Host struct {
	screen tcell.Screen
	opts   Options
	driver *engine.Driver
	tr     translator
	shown  *paint.Surface
	log    *slog.Logger
}

// New returns a host for build. A nil screen opens the process terminal.
func New(screen tcell.Screen, opts Options, build func(ui *core.UI)) (*Host, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap("terminal.New", errors.KindTerminal, err)
		}
		screen = s
	}
	if opts.QuitKeys == nil {
		opts.QuitKeys = DefaultQuitKeys
	}
	return &Host{
		screen: screen,
		opts:   opts,
		driver: engine.NewDriver(core.New(geom.Rect{}), build, opts.FPS),
		log:    logger.WithComponent("terminal"),
	}, nil
}

// Driver returns the frame driver, for hooks and dispatch.
func (h *Host) Driver() *engine.Driver { return h.driver }

// Engine returns the driven engine.
func (h *Host) Engine() *core.Engine { return h.driver.Engine() }

// Run takes over the terminal until ctx is done, a widget quits, or a quit
// key goes unhandled. The terminal is restored before Run returns, also
// when a widget panics.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return errors.Wrap("terminal.Init", errors.KindTerminal, err)
	}
	defer h.screen.Fini()
	h.enable()

	w, ht := h.screen.Size()
	h.driver.Resize(w, ht)
	h.log.Info("terminal started", "width", w, "height", ht, "mouse", h.opts.Mouse)

	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	go h.poll(events, stop)
	defer close(stop)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if h.step() {
			return nil
		}

		var wake <-chan time.Time
		if d, ok := h.driver.NextWake(); ok {
			timer.Reset(d)
			wake = timer.C
		}

		select {
		case <-ctx.Done():
			h.log.Info("terminal stopped", "reason", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok || h.handle(ev) {
				return nil
			}
			if h.drain(events) {
				return nil
			}
		case <-h.driver.Wake():
		case <-wake:
		}
		timer.Stop()
	}
}

func (h *Host) enable() {
	switch h.opts.Mouse {
	case MouseButtons:
		h.screen.EnableMouse(tcell.MouseButtonEvents)
	case MouseDrag:
		h.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	case MouseMotion:
		h.screen.EnableMouse(tcell.MouseMotionEvents)
	}
	if h.opts.Paste {
		h.screen.EnablePaste()
	}
	if h.opts.Focus {
		h.screen.EnableFocus()
	}
	if h.opts.Title != "" {
		h.screen.SetTitle(h.opts.Title)
	}
}

func (h *Host) poll(out chan<- tcell.Event, stop <-chan struct{}) {
	defer close(out)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-stop:
			return
		}
	}
}

// drain handles events already queued so a burst costs one frame.
func (h *Host) drain(events <-chan tcell.Event) bool {
	for {
		select {
		case ev, ok := <-events:
			if !ok || h.handle(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// handle feeds one tcell event to the engine and reports whether the host
// should stop.
func (h *Host) handle(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		h.screen.Sync()
		h.shown = nil
	}
	for _, e := range h.tr.translate(ev) {
		sunk := h.driver.Handle(e)
		if kp, ok := e.(event.KeyPress); ok && !sunk && h.isQuitKey(kp) {
			h.log.Info("quit key", "key", kp)
			return true
		}
	}
	return h.driver.Engine().QuitRequested()
}

func (h *Host) isQuitKey(kp event.KeyPress) bool {
	return slices.ContainsFunc(h.opts.QuitKeys, func(b event.Keybind) bool { return b.Matches(kp) })
}

func (h *Host) step() bool {
	_, cmds := h.driver.Step(h.flush)
	for _, cmd := range cmds {
		switch cmd.Kind {
		case core.CommandSetTitle:
			h.screen.SetTitle(cmd.Title)
		case core.CommandQuit:
			h.log.Info("quit requested")
		}
	}
	return h.driver.Engine().QuitRequested()
}

// flush writes the cells that changed since the last flush.
func (h *Host) flush(s *paint.Surface) {
	changes := s.Diff(h.shown)
	for _, c := range changes {
		if c.Cell.Continuation {
			continue
		}
		mainc, combc := cellRunes(c.Cell.Grapheme)
		h.screen.SetContent(c.Pos.X, c.Pos.Y, mainc, combc, tcellStyle(c.Cell.Style))
	}
	if h.shown == nil {
		h.shown = paint.NewSurface(s.Size())
	}
	h.shown.CopyFrom(s)
	h.screen.Show()
}
