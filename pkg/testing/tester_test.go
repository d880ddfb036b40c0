package testing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/testing/internal/testbed"
	"github.com/go-drift/cellui/pkg/widgets"
)

func TestNewWidgetTester_Defaults(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if got := tester.Engine().Rect().Size(); got != (geom.Vec{X: DefaultTestWidth, Y: DefaultTestHeight}) {
		t.Errorf("expected default size %dx%d, got %v", DefaultTestWidth, DefaultTestHeight, got)
	}
	if tester.Clock() == nil {
		t.Fatal("expected fake clock to be set")
	}
}

func TestPump_WithoutWidget(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.Pump(); !errors.Is(err, ErrNoWidget) {
		t.Errorf("Pump() = %v, want ErrNoWidget", err)
	}
}

func TestPumpWidget_Paints(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(8, 2)

	if err := tester.PumpWidget(func(ui *core.UI) { widgets.Text(ui, "hello") }); err != nil {
		t.Fatal(err)
	}
	want := []string{"hello   ", "        "}
	if got := tester.Rows(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Rows() = %q, want %q", got, want)
	}
}

func TestPumpWidget_Remount(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(func(ui *core.UI) { widgets.Text(ui, "first") })
	first := tester.Find(ByText("first")).ID()

	tester.PumpWidget(func(ui *core.UI) { widgets.Text(ui, "second") })
	if tester.Find(ByText("first")).Exists() {
		t.Error("old tree survived remount")
	}
	if tester.Engine().Contains(first) {
		t.Error("old widget ID still live after remount")
	}
}

func TestClick_Counter(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	counter := &testbed.Counter{}
	tester.PumpWidget(func(ui *core.UI) { counter.Show(ui) })

	for range 2 {
		if err := tester.Click(ByText("+")); err != nil {
			t.Fatal(err)
		}
		tester.Pump()
	}
	if counter.Count != 2 {
		t.Errorf("Count = %d, want 2", counter.Count)
	}
	tester.Pump()
	if !tester.Find(ByText("count: 2")).Exists() {
		t.Errorf("screen = %q", tester.Rows())
	}
}

func TestClick_NoMatch(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(func(ui *core.UI) { widgets.Text(ui, "x") })

	err := tester.Click(ByText("missing"))
	if err == nil || !strings.Contains(err.Error(), `ByText("missing")`) {
		t.Errorf("Click() error = %v", err)
	}
}

func TestFinders(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(func(ui *core.UI) {
		widgets.Column(ui, func() {
			widgets.Text(ui, "title")
			widgets.OnClick(ui, func() { widgets.Text(ui, "ok button") })
			widgets.OnClick(ui, func() { widgets.Text(ui, "cancel button") })
		})
	})

	tests := []struct {
		name   string
		finder Finder
		want   int
	}{
		{"by type", ByType("Label"), 3},
		{"by text", ByText("title"), 1},
		{"containing", ByTextContaining("button"), 2},
		{"descendant", Descendant(ByType("MouseArea"), ByType("Label")), 2},
		{"ancestor", Ancestor(ByText("ok button"), ByType("MouseArea")), 1},
		{"predicate", ByPredicate(func(n *core.SnapshotNode) bool { return n.Interest != "" }), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tester.Find(tt.finder).Count(); got != tt.want {
				t.Errorf("%s matched %d, want %d", tt.finder.Description(), got, tt.want)
			}
		})
	}

	r, ok := tester.Find(ByText("ok button")).Rect()
	if !ok || r != geom.RectFromLTWH(0, 1, 9, 1) {
		t.Errorf("Rect() = %v, %v", r, ok)
	}
}

func TestKeys(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	var resp widgets.KeyResponse
	tester.PumpWidget(func(ui *core.UI) {
		resp = widgets.KeyArea{Sink: true}.Show(ui, nil).Value
	})

	sunk, err := tester.Press("ctrl+s")
	if err != nil || !sunk {
		t.Fatalf("Press() = %v, %v", sunk, err)
	}
	tester.Type("ab")
	tester.Paste("pasted")
	tester.Pump()

	if len(resp.Keys) != 3 || resp.Keys[0].String() != "ctrl+s" || resp.Paste != "pasted" {
		t.Errorf("resp = %+v", resp)
	}
	if _, err := tester.Press("hyper+x"); err == nil {
		t.Error("bad binding accepted")
	}
}

func TestDrag(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	var drag *widgets.Drag
	tester.PumpWidget(func(ui *core.UI) {
		widgets.Align{}.Show(ui, func() {
			resp := widgets.MouseArea{}.Show(ui, func() {
				widgets.Sized{Width: 4, Height: 2}.Show(ui, nil)
			}).Value
			if resp.Dragged != nil {
				drag = resp.Dragged
			}
		})
	})

	if err := tester.Drag(ByType("MouseArea"), geom.Vec{X: 3, Y: 1}); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	if drag == nil {
		t.Fatal("drag not reported")
	}
	want := widgets.Drag{Origin: geom.Pos{X: 2, Y: 1}, Current: geom.Pos{X: 5, Y: 2}, Released: true}
	if *drag != want {
		t.Errorf("drag = %+v, want %+v", *drag, want)
	}
}

func TestScroll(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	var scrolled int
	tester.PumpWidget(func(ui *core.UI) {
		scrolled += widgets.MouseArea{}.Show(ui, func() { widgets.Text(ui, "list") }).Value.Scrolled
	})
	if err := tester.Scroll(ByText("list"), geom.Vec{Y: 3}); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	if scrolled != 3 {
		t.Errorf("scrolled = %d, want 3", scrolled)
	}
}

func TestDispatch(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	text := "before"
	tester.PumpWidget(func(ui *core.UI) { widgets.Text(ui, text) })

	tester.Dispatch(func() { text = "after" })
	tester.Pump()
	if !tester.Find(ByText("after")).Exists() {
		t.Error("dispatched callback did not run before the frame")
	}
}

func TestGoldenScreen(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(12, 3)
	tester.PumpWidget(func(ui *core.UI) {
		widgets.Border{Title: "hi"}.Show(ui, func() { widgets.Text(ui, "body") })
	})

	path := filepath.Join(t.TempDir(), "border.golden")
	want := "┌hi────────┐\n│body      │\n└──────────┘\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}
	tester.CaptureScreen().MatchesFile(t, path)
}

type recordingT struct {
	errors []string
	fatals []string
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return "TestRecording" }
func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}
func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, format)
}

func TestGolden_MismatchAndUpdate(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "screen.golden")
	g := Golden{text: "new\n"}

	rec := &recordingT{}
	g.MatchesFile(rec, path)
	if len(rec.fatals) != 1 {
		t.Fatalf("missing file should fail, got %+v", rec)
	}

	t.Setenv(UpdateEnv, "1")
	g.MatchesFile(rec, path)
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "new\n" {
		t.Fatalf("update wrote %q, %v", data, err)
	}

	t.Setenv(UpdateEnv, "")
	rec = &recordingT{}
	Golden{text: "other\n"}.MatchesFile(rec, path)
	if len(rec.errors) != 1 {
		t.Errorf("mismatch not reported: %+v", rec)
	}
	if diff := (Golden{text: "a\nb\n"}).Diff("a\nc\n"); !strings.Contains(diff, "-c") || !strings.Contains(diff, "+b") {
		t.Errorf("Diff() = %q", diff)
	}
}

func TestCaptureTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(func(ui *core.UI) {
		widgets.Column(ui, func() {
			widgets.Text(ui, "a")
			widgets.Text(ui, "b")
		})
	})
	g, err := tester.CaptureTree()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name: Label#0", "name: Label#1", "text: b"} {
		if !strings.Contains(g.String(), want) {
			t.Errorf("tree missing %q:\n%s", want, g)
		}
	}
}
