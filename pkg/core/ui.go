package core

import (
	"fmt"
	"time"

	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/geom"
)

// UI is the handle application code builds a frame through. It is only
// valid inside the Frame call that produced it.
type UI struct {
	e *Engine
}

func (ui *UI) engine() *Engine {
	if ui == nil || ui.e == nil || !ui.e.building {
		errors.Violation("core.UI", "", "widget call outside of a frame")
	}
	return ui.e
}

// Current returns the innermost open widget, or the root.
func (ui *UI) Current() ID { return ui.engine().current() }

// Parent returns the parent of the innermost open widget.
func (ui *UI) Parent() ID {
	e := ui.engine()
	n, _ := e.nodes.Get(e.current())
	return n.Parent
}

// Rect returns the last frame's rect for the innermost open widget.
func (ui *UI) Rect() geom.Rect {
	e := ui.engine()
	r, _ := e.LayoutRect(e.current())
	return r
}

// RectOf returns the last frame's rect for id.
func (ui *UI) RectOf(id ID) (geom.Rect, bool) { return ui.engine().LayoutRect(id) }

// ClientRect returns the engine's client rect.
func (ui *UI) ClientRect() geom.Rect { return ui.engine().rect }

// Hovered reports whether the pointer is over the innermost open widget.
func (ui *UI) Hovered() bool {
	e := ui.engine()
	return e.router.Hovered(e.current())
}

// Now returns the frame clock.
func (ui *UI) Now() time.Duration { return ui.engine().now }

// FrameCount returns the number of completed frames.
func (ui *UI) FrameCount() uint64 { return ui.engine().frame }

// SetTitle asks the host to change the terminal title.
func (ui *UI) SetTitle(title string) {
	e := ui.engine()
	e.commands = append(e.commands, Command{Kind: CommandSetTitle, Title: title})
}

// Quit asks the host to stop after this frame.
func (ui *UI) Quit() {
	e := ui.engine()
	e.quit = true
	e.commands = append(e.commands, Command{Kind: CommandQuit})
}

// RequestRepaint asks for another frame as soon as possible.
func (ui *UI) RequestRepaint() { ui.engine().RequestRepaint() }

// RequestRepaintAfter asks for another frame after d.
func (ui *UI) RequestRepaintAfter(d time.Duration) { ui.engine().RequestRepaintAfter(d) }

// AnimateBool returns progress toward value, see animation.Manager.
func (ui *UI) AnimateBool(key any, value bool, d time.Duration) float64 {
	return ui.engine().anim.AnimateBool(key, value, d)
}

// AnimateValue returns a value easing toward target, see animation.Manager.
func (ui *UI) AnimateValue(key any, target float64, d time.Duration) float64 {
	return ui.engine().anim.AnimateValue(key, target, d)
}

// Debug records a message for the debug overlay and log.
func (ui *UI) Debug(format string, args ...any) {
	ui.engine().debugf(format, args...)
}

func (e *Engine) debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.debug = append(e.debug, msg)
	e.log.Debug(msg)
}
