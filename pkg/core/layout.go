package core

import (
	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/geom"
)

// LayoutContext is handed to a widget's Layout. Rects read and written
// through it are relative to the widget being laid out.
type LayoutContext struct {
	e       *Engine
	current ID
}

// Current returns the widget being laid out.
func (c *LayoutContext) Current() ID { return c.current }

// Children returns the current widget's children in call order.
func (c *LayoutContext) Children() []ID {
	n, _ := c.e.nodes.Get(c.current)
	return n.Children
}

// ChildrenOf returns the children of id.
func (c *LayoutContext) ChildrenOf(id ID) []ID {
	n, _ := c.e.nodes.Get(id)
	return n.Children
}

// Compute lays out child under constraints and returns its size. The child
// is registered with the input router and recorded at offset zero; place
// it with SetPos.
func (c *LayoutContext) Compute(child ID, constraints geom.Constraints) geom.Size {
	e := c.e
	n := e.nodes.Ptr(child)
	if n == nil {
		errors.Violation("core.Compute", child.String(), "widget no longer exists")
	}
	w := n.Widget

	depth := len(e.clipStack)
	clippedBy := ID{}
	if depth > 0 {
		clippedBy = e.clipStack[depth-1]
	}

	size := layoutWidget(w, &LayoutContext{e: e, current: child}, constraints)
	size = constraints.Constrain(size)

	interest := interestOf(w)
	if _, seen := e.registered[child]; !seen && !interest.IsNone() {
		e.router.Register(child, interest)
		e.registered[child] = struct{}{}
	}
	root, open := e.router.Mouse.CurrentRoot()
	layer := open && root == child
	e.router.PopLayer(child)

	clipping := len(e.clipStack) > depth && e.clipStack[depth] == child
	e.clipStack = e.clipStack[:depth]

	e.layout.Set(child, LayoutNode{
		Rect:      geom.RectFromPosSize(geom.Pos{}, size.Cells()),
		Interest:  interest,
		ClippedBy: clippedBy,
		Clipping:  clipping,
		Layer:     layer,
	})
	return size
}

// SetPos places child relative to the current widget.
func (c *LayoutContext) SetPos(child ID, pos geom.Pos) {
	ln := c.e.layout.Ptr(child)
	if ln == nil {
		errors.Violation("core.SetPos", child.String(), "child was not computed")
	}
	ln.Rect = ln.Rect.WithPos(pos)
}

// SetSize overrides child's size in cells.
func (c *LayoutContext) SetSize(child ID, size geom.Vec) {
	ln := c.e.layout.Ptr(child)
	if ln == nil {
		errors.Violation("core.SetSize", child.String(), "child was not computed")
	}
	ln.Rect = ln.Rect.WithSize(size)
}

// GetRect returns child's rect relative to the current widget.
func (c *LayoutContext) GetRect(child ID) (geom.Rect, bool) {
	ln, ok := c.e.layout.Get(child)
	return ln.Rect, ok
}

// NewLayer opens an input layer rooted at the current widget. Widgets
// registered while it is open take priority over everything registered
// before it. The layer closes when the current widget's layout returns.
func (c *LayoutContext) NewLayer() {
	c.e.router.PushLayer(c.current)
}

// EnableClipping makes the current widget clip its descendants for hit
// testing and painting.
func (c *LayoutContext) EnableClipping() {
	c.e.clipStack = append(c.e.clipStack, c.current)
}

// Flex returns child's flex factor and fit.
func (c *LayoutContext) Flex(child ID) (int, geom.FlexFit) {
	n, _ := c.e.nodes.Get(child)
	return flexOf(n.Widget)
}

// Flow returns child's flow.
func (c *LayoutContext) Flow(child ID) geom.Flow {
	n, _ := c.e.nodes.Get(child)
	return flowOf(n.Widget)
}

// ClientRect returns the engine's client rect.
func (c *LayoutContext) ClientRect() geom.Rect { return c.e.rect }

// Debug records a message for the debug overlay and log.
func (c *LayoutContext) Debug(format string, args ...any) {
	c.e.debugf(format, args...)
}

// WarnOnce logs a warning for the current widget the first time key is
// seen. Layout runs every frame; this keeps a persistent problem from
// flooding the log.
func (c *LayoutContext) WarnOnce(key, msg string, args ...any) {
	seen := c.e.warned[c.current]
	if _, ok := seen[key]; ok {
		return
	}
	if seen == nil {
		seen = make(map[string]struct{})
		c.e.warned[c.current] = seen
	}
	seen[key] = struct{}{}
	c.e.log.Warn(msg, append([]any{"widget", c.current}, args...)...)
}

// DefaultLayout sizes the current widget to its largest child, laying every
// child out at the origin under the incoming constraints.
func (c *LayoutContext) DefaultLayout(constraints geom.Constraints) geom.Size {
	size := geom.SizeZero
	for _, child := range c.Children() {
		size = size.Max(c.Compute(child, constraints))
	}
	return constraints.ConstrainMin(size)
}

func layoutWidget(w any, ctx *LayoutContext, constraints geom.Constraints) geom.Size {
	if l, ok := w.(Layouter); ok {
		return l.Layout(ctx, constraints)
	}
	return ctx.DefaultLayout(constraints)
}

// runLayout clears last frame's results, lays the tree out tight to the
// client size and resolves absolute rects.
func (e *Engine) runLayout() {
	e.router.ResetRegistries()
	e.layout.Clear()
	clear(e.registered)
	e.clipStack = e.clipStack[:0]

	size := geom.Size{Width: float64(e.rect.Width()), Height: float64(e.rect.Height())}
	ctx := &LayoutContext{e: e, current: e.root}
	ctx.Compute(e.root, geom.Tight(size))

	e.resolve()
}

type resolveItem struct {
	id     ID
	origin geom.Pos
}

// resolve turns parent-relative rects into absolute ones, breadth first
// from the root at the client rect's origin. Children that their parent
// never computed keep no layout.
func (e *Engine) resolve() {
	queue := []resolveItem{{e.root, e.rect.Min()}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		ln := e.layout.Ptr(item.id)
		if ln == nil {
			continue
		}
		ln.Rect = ln.Rect.Translate(item.origin.Vec())
		n, _ := e.nodes.Get(item.id)
		for _, child := range n.Children {
			queue = append(queue, resolveItem{child, ln.Rect.Min()})
		}
	}
}

// rootWidget lays its children out over the whole client area in its own
// input layer.
type rootWidget struct{}

func (*rootWidget) Layout(ctx *LayoutContext, constraints geom.Constraints) geom.Size {
	ctx.NewLayer()
	for _, child := range ctx.Children() {
		ctx.Compute(child, constraints)
	}
	return constraints.MaxSize()
}
