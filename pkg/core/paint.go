package core

import (
	"time"

	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// PaintContext is handed to a widget's Paint.
type PaintContext struct {
	p       *painter
	current ID
	rect    geom.Rect
	canvas  paint.Canvas
}

// Current returns the widget being painted.
func (c *PaintContext) Current() ID { return c.current }

// Rect returns the widget's absolute rect.
func (c *PaintContext) Rect() geom.Rect { return c.rect }

// Canvas returns a canvas whose origin is the widget's top-left corner and
// whose clip is the widget's rect intersected with its clipping ancestors.
func (c *PaintContext) Canvas() paint.Canvas { return c.canvas }

// Children returns the widget's children.
func (c *PaintContext) Children() []ID {
	n, _ := c.p.e.nodes.Get(c.current)
	return n.Children
}

// Paint paints child and its subtree.
func (c *PaintContext) Paint(child ID) { c.p.paint(child) }

// PaintChildren paints every child in call order.
func (c *PaintContext) PaintChildren() {
	for _, child := range c.Children() {
		c.p.paint(child)
	}
}

// Hovered reports whether the pointer is over the widget.
func (c *PaintContext) Hovered() bool { return c.p.e.router.Hovered(c.current) }

// HoveredID reports whether the pointer is over id.
func (c *PaintContext) HoveredID(id ID) bool { return c.p.e.router.Hovered(id) }

// Now returns the frame clock.
func (c *PaintContext) Now() time.Duration { return c.p.e.now }

// AnimateBool returns progress toward value, keyed by key.
func (c *PaintContext) AnimateBool(key any, value bool, d time.Duration) float64 {
	return c.p.e.anim.AnimateBool(key, value, d)
}

// AnimateValue returns a value easing toward target, keyed by key.
func (c *PaintContext) AnimateValue(key any, target float64, d time.Duration) float64 {
	return c.p.e.anim.AnimateValue(key, target, d)
}

type painter struct {
	e        *Engine
	base     paint.Canvas
	deferred []ID
}

// Paint draws the last laid-out tree onto s. Widgets that opened an input
// layer are painted after everything beneath them so overlays stay on top.
func (e *Engine) Paint(s *paint.Surface) {
	p := &painter{e: e, base: paint.NewCanvas(s).Crop(e.rect)}
	p.paint(e.root)
	for i := 0; i < len(p.deferred); i++ {
		p.paintNode(p.deferred[i])
	}
}

func (p *painter) paint(id ID) {
	ln, ok := p.e.layout.Get(id)
	if !ok {
		return
	}
	if ln.Layer && id != p.e.root {
		p.deferred = append(p.deferred, id)
		return
	}
	p.paintNode(id)
}

func (p *painter) paintNode(id ID) {
	n, ok := p.e.nodes.Get(id)
	if !ok {
		return
	}
	rect, _ := p.e.LayoutRect(id)
	clip, _ := p.e.ClipRect(id)
	canvas := p.base.Crop(rect).Restrict(clip)

	ctx := &PaintContext{p: p, current: id, rect: rect, canvas: canvas}
	if w, ok := n.Widget.(Painter); ok {
		w.Paint(ctx)
		return
	}
	ctx.PaintChildren()
}
