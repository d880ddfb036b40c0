package core

import (
	"time"

	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
)

// EventContext is handed to a widget's Event. Rects are absolute.
type EventContext struct {
	e       *Engine
	current ID
	rect    geom.Rect
}

// Current returns the widget receiving the event.
func (c *EventContext) Current() ID { return c.current }

// Rect returns the receiving widget's rect.
func (c *EventContext) Rect() geom.Rect { return c.rect }

// GetRect returns the rect of any laid-out widget.
func (c *EventContext) GetRect(id ID) (geom.Rect, bool) { return c.e.LayoutRect(id) }

// Children returns the receiving widget's children.
func (c *EventContext) Children() []ID {
	n, _ := c.e.nodes.Get(c.current)
	return n.Children
}

// Hovered reports whether the pointer is over id.
func (c *EventContext) Hovered(id ID) bool { return c.e.router.Hovered(id) }

// IsHovered reports whether the pointer is over the receiving widget.
func (c *EventContext) IsHovered() bool { return c.e.router.Hovered(c.current) }

// Pointer returns the last known pointer position.
func (c *EventContext) Pointer() geom.Pos { return c.e.router.Pos() }

// Modifiers returns the modifiers held during the last event.
func (c *EventContext) Modifiers() event.Modifiers { return c.e.router.Modifiers() }

// Now returns the frame clock.
func (c *EventContext) Now() time.Duration { return c.e.now }

// RequestRepaint asks for another frame.
func (c *EventContext) RequestRepaint() { c.e.repaint.request() }

// Quit asks the host to stop.
func (c *EventContext) Quit() {
	c.e.quit = true
	c.e.commands = append(c.e.commands, Command{Kind: CommandQuit})
}

// Debug records a message for the debug overlay and log.
func (c *EventContext) Debug(format string, args ...any) {
	c.e.debugf(format, args...)
}
