// Package core is the immediate-mode engine: it reconciles each frame's
// widget calls against a retained tree, lays the tree out, routes input to
// it and paints it.
//
// Application code describes the whole interface every frame inside
// [Engine.Frame]. Widget calls are matched to existing nodes by parent,
// position and type, so widget state survives between frames for as long
// as the same call keeps happening in the same place.
package core

import (
	"log/slog"
	"time"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/arena"
	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
)

// CommandKind identifies a request from widgets to the host.
type CommandKind int

const (
	CommandSetTitle CommandKind = iota
	CommandQuit
)

// Command is a host request queued during a frame or event dispatch.
type Command struct {
	Kind  CommandKind
	Title string
}

// Engine owns the widget tree, the layout results and the input router.
// It is not safe for concurrent use; hosts drive it from one goroutine.
type Engine struct {
	nodes  arena.Arena[Node]
	layout arena.Secondary[LayoutNode]
	root   ID
	rect   geom.Rect

	router *input.Router
	anim   *animation.Manager

	// stack holds the widgets between Begin and End; the root is not on it.
	stack     []ID
	removed   []ID
	clipStack []ID
	// registered dedupes router registrations within one layout pass.
	registered map[ID]struct{}
	warned     map[ID]map[string]struct{}

	building    bool
	dispatching bool

	now     time.Duration
	frame   uint64
	repaint repaintSchedule

	commands []Command
	debug    []string
	quit     bool

	log *slog.Logger
}

// New returns an engine whose client area is rect.
func New(rect geom.Rect) *Engine {
	e := &Engine{
		rect:       rect,
		router:     input.NewRouter(),
		anim:       animation.NewManager(),
		registered: make(map[ID]struct{}),
		warned:     make(map[ID]map[string]struct{}),
		log:        logger.WithComponent("engine"),
	}
	e.root = e.nodes.Insert(Node{
		Widget:   &rootWidget{},
		Type:     rootType,
		TypeName: "Root",
	})
	e.repaint.request()
	return e
}

// Root returns the handle of the root node.
func (e *Engine) Root() ID { return e.root }

// Rect returns the client rect.
func (e *Engine) Rect() geom.Rect { return e.rect }

// SetRect changes the client rect. The next frame lays out against it.
func (e *Engine) SetRect(r geom.Rect) {
	if r != e.rect {
		e.rect = r
		e.repaint.request()
	}
}

// Tick advances the frame clock.
func (e *Engine) Tick(now time.Duration) {
	if now > e.now {
		e.now = now
	}
	e.anim.Tick(e.now)
}

// Now returns the frame clock.
func (e *Engine) Now() time.Duration { return e.now }

// FrameCount returns the number of completed frames.
func (e *Engine) FrameCount() uint64 { return e.frame }

// Len returns the number of live nodes, the root included.
func (e *Engine) Len() int { return e.nodes.Len() }

// Router exposes the input router for hosts and debugging.
func (e *Engine) Router() *input.Router { return e.router }

// Contains reports whether id names a live node.
func (e *Engine) Contains(id ID) bool { return e.nodes.Contains(id) }

// Node returns a copy of the node for id.
func (e *Engine) Node(id ID) (Node, bool) { return e.nodes.Get(id) }

// Layout returns the layout result for id from the last frame.
func (e *Engine) Layout(id ID) (LayoutNode, bool) { return e.layout.Get(id) }

// LayoutRect implements input.Geometry.
func (e *Engine) LayoutRect(id ID) (geom.Rect, bool) {
	ln, ok := e.layout.Get(id)
	return ln.Rect, ok
}

// ClippedBy implements input.Geometry.
func (e *Engine) ClippedBy(id ID) ID {
	ln, _ := e.layout.Get(id)
	return ln.ClippedBy
}

// ClipRect returns id's rect intersected with every clipping ancestor.
func (e *Engine) ClipRect(id ID) (geom.Rect, bool) {
	rect, ok := e.LayoutRect(id)
	if !ok {
		return geom.Rect{}, false
	}
	for clip := e.ClippedBy(id); !clip.IsNil(); clip = e.ClippedBy(clip) {
		parent, ok := e.LayoutRect(clip)
		if !ok {
			break
		}
		rect = rect.Intersect(parent)
	}
	return rect, true
}

// Hovered reports whether the pointer is over id.
func (e *Engine) Hovered(id ID) bool { return e.router.Hovered(id) }

// Commands drains the queued host commands.
func (e *Engine) Commands() []Command {
	cmds := e.commands
	e.commands = nil
	return cmds
}

// QuitRequested reports whether a widget or the host asked to quit.
func (e *Engine) QuitRequested() bool { return e.quit }

// DebugMessages drains the messages widgets recorded with Debug.
func (e *Engine) DebugMessages() []string {
	msgs := e.debug
	e.debug = nil
	return msgs
}

// RequestRepaint asks for a frame as soon as possible.
func (e *Engine) RequestRepaint() { e.repaint.request() }

// RequestRepaintAfter asks for a frame once d has passed on the frame clock.
func (e *Engine) RequestRepaintAfter(d time.Duration) { e.repaint.requestAt(e.now + d) }

// NeedsRepaint reports whether a frame is due at the current frame clock.
func (e *Engine) NeedsRepaint() bool {
	return e.repaint.due(e.now) || e.anim.Active()
}

// Handle feeds one host event through the engine and reports whether a
// widget sank it. Resize changes the client rect; Quit records a quit
// request. Everything else goes to the router.
func (e *Engine) Handle(ev event.Event) bool {
	if e.building {
		errors.Violation("core.Handle", "", "event dispatched during a frame")
	}
	if e.dispatching {
		errors.Violation("core.Handle", "", "event dispatched from an event handler")
	}
	switch ev := ev.(type) {
	case event.Resize:
		e.SetRect(geom.RectFromPosSize(e.rect.Min(), ev.Size))
		return true
	case event.Quit:
		e.quit = true
		return true
	}

	e.dispatching = true
	defer func() { e.dispatching = false }()

	resp := e.router.Handle(ev, e, target{e})
	e.repaint.request()
	return resp.IsSink()
}

// Reset removes every widget below the root. Their state is lost.
func (e *Engine) Reset() {
	root := e.nodes.Ptr(e.root)
	children := root.Children
	root.Children = nil
	root.Next = 0
	for _, child := range children {
		e.removeSubtree(child)
	}
	e.purgeRemoved()
	e.anim.Clear()
	e.repaint.request()
}

// Frame runs one frame: build reconciles the tree, then the engine prunes
// nodes that were not visited, lays the tree out and resolves absolute
// rects. Paint separately with Paint.
func (e *Engine) Frame(build func(ui *UI)) {
	if e.building {
		errors.Violation("core.Frame", "", "frame started while another frame is building")
	}
	if e.dispatching {
		errors.Violation("core.Frame", "", "frame started during event dispatch")
	}
	e.building = true
	defer func() { e.building = false }()
	e.repaint.clear(e.now)
	e.anim.BeginFrame()

	root := e.nodes.Ptr(e.root)
	root.Next = 0
	e.stack = e.stack[:0]

	build(&UI{e: e})

	if n := len(e.stack); n > 0 {
		errors.Violation("core.Frame", e.stack[n-1].String(), "frame ended with %d unclosed widget(s)", n)
	}
	e.prune(e.root)
	e.purgeRemoved()

	e.runLayout()
	e.frame++
}

func (e *Engine) purgeRemoved() {
	for _, id := range e.removed {
		e.router.Remove(id)
		e.layout.Delete(id)
		e.anim.Forget(id)
		delete(e.warned, id)
	}
	if len(e.removed) > 0 {
		e.log.Debug("removed widgets", "count", len(e.removed), "frame", e.frame)
	}
	e.removed = e.removed[:0]
}

// target adapts the engine to input.Target.
type target struct{ e *Engine }

func (t target) Dispatch(id ID, ev input.Event) input.Handled {
	n := t.e.nodes.Ptr(id)
	if n == nil {
		errors.Violation("core.Dispatch", id.String(), "event for a widget that no longer exists")
	}
	h, ok := n.Widget.(EventHandler)
	if !ok {
		return input.Bubble
	}
	ln, _ := t.e.layout.Get(id)
	return h.Event(&EventContext{e: t.e, current: id, rect: ln.Rect}, ev)
}
