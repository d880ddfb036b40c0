package core

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
	"github.com/go-drift/cellui/pkg/paint"
)

type boxProps struct {
	name     string
	offset   geom.Pos
	size     geom.Size
	interest input.Interest
	clip     bool
	layer    bool
	sink     bool
	fill     rune
	log      *[]string
	onEvent  func()
	warn     string
}

type box struct {
	props   boxProps
	updates int
}

func (b *box) Update(p boxProps) int {
	b.props = p
	b.updates++
	return b.updates
}

func (b *box) Interest() input.Interest { return b.props.interest }

func (b *box) Layout(ctx *LayoutContext, _ geom.Constraints) geom.Size {
	if b.props.layer {
		ctx.NewLayer()
	}
	if b.props.clip {
		ctx.EnableClipping()
	}
	if b.props.warn != "" {
		ctx.WarnOnce(b.props.warn, "box warning")
	}
	for _, child := range ctx.Children() {
		ctx.Compute(child, geom.Loose(b.props.size))
		if cb, ok := ctx.e.nodes.Ptr(child).Widget.(*box); ok {
			ctx.SetPos(child, cb.props.offset)
		}
	}
	return b.props.size
}

func (b *box) Event(_ *EventContext, ev input.Event) input.Handled {
	if b.props.log != nil {
		*b.props.log = append(*b.props.log, fmt.Sprintf("%s:%T", b.props.name, ev))
	}
	if b.props.onEvent != nil {
		b.props.onEvent()
	}
	if b.props.sink {
		return input.Sink
	}
	return input.Bubble
}

func (b *box) Paint(ctx *PaintContext) {
	if b.props.fill != 0 {
		ctx.Canvas().Fill(b.props.fill, paint.DefaultStyle)
	}
	ctx.PaintChildren()
}

var boxType = NewType("Box", func() Updater[boxProps, int] { return &box{} })

type other struct{}

func (*other) Update(struct{}) NoResponse { return NoResponse{} }

var otherType = NewType("Other", func() Updater[struct{}, NoResponse] { return &other{} })

func showBox(ui *UI, p boxProps, children func()) ID {
	return ShowChildren(ui, boxType, p, children).ID
}

func sz(w, h float64) geom.Size { return geom.Size{Width: w, Height: h} }

// quietHandler keeps protocol violations out of the test log.
type quietHandler struct{ errors.LogHandler }

func (quietHandler) HandleProtocolError(*errors.ProtocolError) {}

func expectViolation(t *testing.T, fn func()) *errors.ProtocolError {
	t.Helper()
	defer errors.SetHandler(errors.SetHandler(&quietHandler{}))

	var pe *errors.ProtocolError
	func() {
		defer func() {
			r := recover()
			var ok bool
			if pe, ok = r.(*errors.ProtocolError); !ok {
				t.Fatalf("recovered %v (%T), want *errors.ProtocolError", r, r)
			}
		}()
		fn()
	}()
	return pe
}

func newEngine() *Engine {
	return New(geom.RectFromLTWH(0, 0, 20, 10))
}

func TestIdentityStableAcrossFrames(t *testing.T) {
	e := newEngine()
	var first, second []ID
	var updates int
	build := func(out *[]ID) func(*UI) {
		return func(ui *UI) {
			id, n := Begin(ui, boxType, boxProps{size: sz(20, 10)})
			*out = append(*out, id)
			*out = append(*out, showBox(ui, boxProps{size: sz(1, 1)}, nil))
			ui.End(id)
			updates = n
		}
	}
	e.Frame(build(&first))
	e.Frame(build(&second))

	if !slices.Equal(first, second) {
		t.Fatalf("ids changed between frames: %v vs %v", first, second)
	}
	if updates != 2 {
		t.Errorf("widget state should persist, update count = %d", updates)
	}
	if got := e.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
}

func TestStaleWidgetsArePurged(t *testing.T) {
	e := newEngine()
	var kept, gone ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			kept = showBox(ui, boxProps{size: sz(5, 5), interest: input.InterestMouse | input.InterestKeyInput}, nil)
			gone = showBox(ui, boxProps{offset: geom.Pos{X: 10}, size: sz(5, 5), interest: input.InterestMouse | input.InterestKeyInput}, nil)
		})
	})
	e.Handle(event.Mouse{Kind: event.MouseMove, Pos: geom.Pos{X: 11, Y: 1}})
	if !e.Hovered(gone) {
		t.Fatal("second box should be hovered")
	}

	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			showBox(ui, boxProps{size: sz(5, 5), interest: input.InterestMouse | input.InterestKeyInput}, nil)
		})
	})

	if e.Contains(gone) {
		t.Error("removed widget still in the arena")
	}
	if _, ok := e.Layout(gone); ok {
		t.Error("removed widget still has a layout")
	}
	if e.Router().Tracks(gone) {
		t.Error("removed widget still tracked by the router")
	}
	if !e.Contains(kept) || !e.Router().Tracks(kept) {
		t.Error("kept widget should stay live and registered")
	}
}

func TestTypeChangeDiscardsSubtree(t *testing.T) {
	e := newEngine()
	var a, child ID
	e.Frame(func(ui *UI) {
		a = showBox(ui, boxProps{size: sz(20, 10)}, func() {
			child = showBox(ui, boxProps{size: sz(1, 1)}, nil)
		})
	})

	var b ID
	e.Frame(func(ui *UI) {
		b = Show(ui, otherType, struct{}{}).ID
	})

	if a == b {
		t.Fatal("a different type at the same position must get a new node")
	}
	if e.Contains(a) || e.Contains(child) {
		t.Error("old subtree should be removed")
	}
	root, _ := e.Node(e.Root())
	if !slices.Equal(root.Children, []ID{b}) {
		t.Errorf("root children = %v, want [%v]", root.Children, b)
	}

	var again ID
	var n int
	e.Frame(func(ui *UI) {
		again, n = Begin(ui, boxType, boxProps{size: sz(20, 10)})
		ui.End(again)
	})
	if n != 1 {
		t.Errorf("replacement widget should start from fresh state, update count = %d", n)
	}
}

func TestTypeChangeKeepsFollowingSiblings(t *testing.T) {
	e := newEngine()
	var second ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			showBox(ui, boxProps{}, nil)
			second = showBox(ui, boxProps{}, nil)
		})
	})
	var after ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			Show(ui, otherType, struct{}{})
			after = showBox(ui, boxProps{}, nil)
		})
	})
	if after != second {
		t.Errorf("sibling after a type change should keep its identity: %v vs %v", after, second)
	}
}

func TestEndMismatchIsFatal(t *testing.T) {
	e := newEngine()
	pe := expectViolation(t, func() {
		e.Frame(func(ui *UI) {
			outer, _ := Begin(ui, boxType, boxProps{})
			Begin(ui, boxType, boxProps{})
			ui.End(outer)
		})
	})
	if pe.Op != "core.End" {
		t.Errorf("Op = %q", pe.Op)
	}
}

func TestUnclosedWidgetIsFatal(t *testing.T) {
	e := newEngine()
	expectViolation(t, func() {
		e.Frame(func(ui *UI) {
			Begin(ui, boxType, boxProps{})
		})
	})
}

func TestReentrancyIsFatal(t *testing.T) {
	e := newEngine()
	expectViolation(t, func() {
		e.Frame(func(ui *UI) {
			e.Frame(func(*UI) {})
		})
	})

	e = newEngine()
	expectViolation(t, func() {
		e.Frame(func(ui *UI) {
			e.Handle(event.KeyPress{Key: event.Key{Code: event.KeyEnter}})
		})
	})

	e = newEngine()
	var ui *UI
	e.Frame(func(u *UI) { ui = u })
	expectViolation(t, func() { Show(ui, otherType, struct{}{}) })

	e = newEngine()
	nested := func() { e.Handle(event.KeyPress{Key: event.Key{Code: event.KeyEnter}}) }
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{interest: input.InterestKeyInput, onEvent: nested}, nil)
	})
	expectViolation(t, func() {
		e.Handle(event.KeyPress{Key: event.Key{Code: event.KeyRune, Rune: 'x'}})
	})
	if e.dispatching {
		t.Error("dispatch flag should be cleared after the violation unwinds")
	}
}

func TestWarningsForgottenWithWidget(t *testing.T) {
	e := newEngine()
	var id ID
	e.Frame(func(ui *UI) {
		id = showBox(ui, boxProps{size: sz(2, 1), warn: "overflow"}, nil)
	})
	if _, ok := e.warned[id]["overflow"]; !ok {
		t.Fatal("warning was not recorded")
	}
	e.Frame(func(*UI) {})
	if len(e.warned) != 0 {
		t.Errorf("warned = %v, want empty after the widget is removed", e.warned)
	}
}

func TestAnimationKeepsRepainting(t *testing.T) {
	e := newEngine()
	target := 0.0
	var got float64
	build := func(ui *UI) { got = ui.AnimateValue("bar", target, 100*time.Millisecond) }
	e.Frame(build)

	target = 10
	e.Frame(build)
	frames := 0
	for now := 20 * time.Millisecond; now <= 200*time.Millisecond; now += 20 * time.Millisecond {
		e.Tick(now)
		if !e.NeedsRepaint() {
			break
		}
		e.Frame(build)
		frames++
	}
	if frames != 5 {
		t.Errorf("animation drove %d frames, want 5", frames)
	}
	if got != 10 {
		t.Errorf("value = %v, want 10", got)
	}
	e.Tick(time.Second)
	if e.NeedsRepaint() {
		t.Error("settled animation still wants frames")
	}
}

func TestAbsoluteRects(t *testing.T) {
	e := New(geom.RectFromLTWH(1, 1, 20, 10))
	var parent, child ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			parent = showBox(ui, boxProps{offset: geom.Pos{X: 2, Y: 1}, size: sz(10, 5)}, func() {
				child = showBox(ui, boxProps{offset: geom.Pos{X: 1, Y: 1}, size: sz(3, 2)}, nil)
			})
		})
	})

	tests := []struct {
		id   ID
		want geom.Rect
	}{
		{e.Root(), geom.RectFromLTWH(1, 1, 20, 10)},
		{parent, geom.RectFromLTWH(3, 2, 10, 5)},
		{child, geom.RectFromLTWH(4, 3, 3, 2)},
	}
	for _, tt := range tests {
		got, ok := e.LayoutRect(tt.id)
		if !ok || got != tt.want {
			t.Errorf("rect(%v) = %v (%v), want %v", tt.id, got, ok, tt.want)
		}
	}
}

func TestClipRestrictsHitTesting(t *testing.T) {
	e := newEngine()
	var log []string
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			showBox(ui, boxProps{size: sz(5, 5), clip: true}, func() {
				showBox(ui, boxProps{name: "inner", offset: geom.Pos{X: 3, Y: 3}, size: sz(5, 5), interest: input.InterestMouse, log: &log}, nil)
			})
		})
	})

	e.Handle(event.Mouse{Kind: event.MouseClick, Pos: geom.Pos{X: 6, Y: 6}, Button: event.ButtonPrimary})
	if len(log) != 0 {
		t.Fatalf("click outside the clip reached %v", log)
	}
	e.Handle(event.Mouse{Kind: event.MouseClick, Pos: geom.Pos{X: 4, Y: 4}, Button: event.ButtonPrimary})
	if !slices.Equal(log, []string{"inner:input.MouseClick"}) {
		t.Fatalf("log = %v", log)
	}
}

func TestClipBookkeeping(t *testing.T) {
	e := newEngine()
	var outer, inner, leaf, sibling ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			outer = showBox(ui, boxProps{size: sz(10, 10), clip: true}, func() {
				inner = showBox(ui, boxProps{size: sz(5, 5), clip: true}, func() {
					leaf = showBox(ui, boxProps{size: sz(2, 2)}, nil)
				})
			})
			sibling = showBox(ui, boxProps{size: sz(2, 2)}, nil)
		})
	})

	tests := []struct {
		name      string
		id        ID
		clippedBy ID
		clipping  bool
	}{
		{"outer", outer, ID{}, true},
		{"inner", inner, outer, true},
		{"leaf", leaf, inner, false},
		{"sibling", sibling, ID{}, false},
	}
	for _, tt := range tests {
		ln, _ := e.Layout(tt.id)
		if ln.ClippedBy != tt.clippedBy || ln.Clipping != tt.clipping {
			t.Errorf("%s: clippedBy=%v clipping=%v, want %v %v", tt.name, ln.ClippedBy, ln.Clipping, tt.clippedBy, tt.clipping)
		}
	}
}

func TestLayerTakesPriority(t *testing.T) {
	e := newEngine()
	var log []string
	var overlay ID
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			overlay = showBox(ui, boxProps{size: sz(20, 10), layer: true}, func() {
				showBox(ui, boxProps{name: "c1", offset: geom.Pos{X: 2, Y: 2}, size: sz(2, 2), interest: input.InterestMouse, sink: true, log: &log}, nil)
			})
			showBox(ui, boxProps{name: "l2", size: sz(10, 10), interest: input.InterestMouse, sink: true, log: &log}, nil)
		})
	})

	e.Handle(event.Mouse{Kind: event.MouseClick, Pos: geom.Pos{X: 2, Y: 2}, Button: event.ButtonPrimary})
	if !slices.Equal(log, []string{"c1:input.MouseClick"}) {
		t.Fatalf("log = %v", log)
	}
	if ln, _ := e.Layout(overlay); !ln.Layer {
		t.Error("overlay should be marked as opening a layer")
	}
}

func TestKeyboardLayeredOrder(t *testing.T) {
	e := newEngine()
	var log []string
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10)}, func() {
			showBox(ui, boxProps{name: "base", interest: input.InterestKeyInput, log: &log}, nil)
			showBox(ui, boxProps{size: sz(20, 10), layer: true}, func() {
				showBox(ui, boxProps{name: "top", interest: input.InterestKeyInput, log: &log}, nil)
			})
		})
	})
	e.Handle(event.KeyPress{Key: event.Key{Code: event.KeyRune, Rune: 'x'}})
	want := []string{"top:input.KeyInput", "base:input.KeyInput"}
	if !slices.Equal(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestLayersPaintOnTop(t *testing.T) {
	e := New(geom.RectFromLTWH(0, 0, 4, 1))
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(4, 1)}, func() {
			showBox(ui, boxProps{size: sz(2, 1), layer: true, fill: 'L'}, nil)
			showBox(ui, boxProps{size: sz(4, 1), fill: 'b'}, nil)
		})
	})
	s := paint.NewSurface(geom.Vec{X: 4, Y: 1})
	e.Paint(s)
	if got := s.Row(0); got != "LLbb" {
		t.Errorf("row = %q, want %q", got, "LLbb")
	}
}

func TestPaintClipsToAncestors(t *testing.T) {
	e := New(geom.RectFromLTWH(0, 0, 6, 1))
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(6, 1)}, func() {
			showBox(ui, boxProps{size: sz(3, 1), clip: true}, func() {
				showBox(ui, boxProps{offset: geom.Pos{X: 1}, size: sz(5, 1), fill: 'x'}, nil)
			})
		})
	})
	s := paint.NewSurface(geom.Vec{X: 6, Y: 1})
	e.Paint(s)
	if got := s.Row(0); got != " xx   " {
		t.Errorf("row = %q", got)
	}
}

func TestResizeRelayouts(t *testing.T) {
	e := newEngine()
	frame := func(ui *UI) { Show(ui, otherType, struct{}{}) }
	e.Frame(frame)
	e.Handle(event.Resize{Size: geom.Vec{X: 30, Y: 5}})
	if !e.NeedsRepaint() {
		t.Error("resize should request a repaint")
	}
	e.Frame(frame)
	if r, _ := e.LayoutRect(e.Root()); r != geom.RectFromLTWH(0, 0, 30, 5) {
		t.Errorf("root rect = %v", r)
	}
}

func TestRepaintSchedule(t *testing.T) {
	e := newEngine()
	e.Frame(func(ui *UI) { ui.RequestRepaintAfter(100 * time.Millisecond) })
	if e.NeedsRepaint() {
		t.Fatal("repaint should not be due yet")
	}
	if d, ok := e.Deadline(); !ok || d != 100*time.Millisecond {
		t.Fatalf("Deadline = %v %v", d, ok)
	}
	e.Tick(150 * time.Millisecond)
	if !e.NeedsRepaint() {
		t.Fatal("repaint should be due")
	}
	e.Frame(func(*UI) {})
	if e.NeedsRepaint() {
		t.Error("frame should satisfy the request")
	}
}

func TestCommands(t *testing.T) {
	e := newEngine()
	e.Frame(func(ui *UI) {
		ui.SetTitle("demo")
		ui.Quit()
	})
	cmds := e.Commands()
	if len(cmds) != 2 || cmds[0].Kind != CommandSetTitle || cmds[0].Title != "demo" || cmds[1].Kind != CommandQuit {
		t.Fatalf("commands = %+v", cmds)
	}
	if !e.QuitRequested() {
		t.Error("quit should be recorded")
	}
	if len(e.Commands()) != 0 {
		t.Error("Commands should drain")
	}
}

func TestReset(t *testing.T) {
	e := newEngine()
	var id ID
	e.Frame(func(ui *UI) {
		id = showBox(ui, boxProps{size: sz(20, 10), interest: input.InterestKeyInput}, nil)
	})
	e.Reset()
	if e.Contains(id) || e.Router().Tracks(id) || e.Len() != 1 {
		t.Errorf("Reset left widgets behind: len=%d", e.Len())
	}
}

func TestSnapshot(t *testing.T) {
	e := newEngine()
	e.Frame(func(ui *UI) {
		showBox(ui, boxProps{size: sz(20, 10), layer: true, interest: input.InterestKeyInput}, func() {
			showBox(ui, boxProps{size: sz(2, 2)}, nil)
		})
	})
	s := e.Snapshot()
	if s.Nodes != 3 || s.Frame != 1 {
		t.Fatalf("nodes=%d frame=%d", s.Nodes, s.Frame)
	}
	top := s.Root.Children[0]
	if top.Type != "Box" || !top.Layer || top.Interest != "key_input" || len(top.Children) != 1 {
		t.Errorf("unexpected snapshot node %+v", top)
	}
	if len(s.Keyboard) != 2 || len(s.Keyboard[1].Widgets) != 1 {
		t.Errorf("keyboard layers = %+v", s.Keyboard)
	}
}
