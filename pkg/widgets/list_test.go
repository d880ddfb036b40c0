package widgets

import (
	"testing"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

func frame(w, h int, build func(ui *core.UI)) *core.Engine {
	e := core.New(geom.RectFromLTWH(0, 0, w, h))
	e.Frame(build)
	return e
}

func rectOf(t *testing.T, e *core.Engine, id core.ID) geom.Rect {
	t.Helper()
	r, ok := e.LayoutRect(id)
	if !ok {
		t.Fatalf("no layout for %v", id)
	}
	return r
}

func TestFlexDistribution(t *testing.T) {
	var ids []core.ID
	e := frame(80, 1, func(ui *core.UI) {
		List{CrossAxisAlignment: geom.CrossAxisAlignmentStretch}.Show(ui, func() {
			for _, f := range []int{1, 2, 1} {
				ids = append(ids, Flex{Factor: f, Fit: geom.FlexFitTight}.Show(ui, nil).ID)
			}
		})
	})

	want := []geom.Rect{
		geom.RectFromLTWH(0, 0, 20, 1),
		geom.RectFromLTWH(20, 0, 40, 1),
		geom.RectFromLTWH(60, 0, 20, 1),
	}
	for i, id := range ids {
		if got := rectOf(t, e, id); got != want[i] {
			t.Errorf("child %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestFlexSharesAddUp(t *testing.T) {
	tests := []struct {
		remaining float64
		factors   []int
		want      []int
	}{
		{80, []int{1, 2, 1}, []int{20, 40, 20}},
		{10, []int{1, 1, 1}, []int{3, 3, 4}},
		{7.5, []int{1}, []int{7}},
		{0, []int{1, 1}, []int{0, 0}},
		{5, nil, []int{}},
	}
	for _, tt := range tests {
		got := flexShares(tt.remaining, tt.factors)
		if len(got) != len(tt.want) {
			t.Fatalf("flexShares(%v, %v) = %v", tt.remaining, tt.factors, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("flexShares(%v, %v) = %v, want %v", tt.remaining, tt.factors, got, tt.want)
				break
			}
		}
	}
}

func TestFlexAfterFixedChildren(t *testing.T) {
	var fixed, rest core.ID
	e := frame(30, 1, func(ui *core.UI) {
		List{Spacing: 2, CrossAxisAlignment: geom.CrossAxisAlignmentStretch}.Show(ui, func() {
			fixed = Sized{Width: 8, Height: 1}.Show(ui, nil).ID
			rest = Expanded(ui, nil).ID
		})
	})
	if got := rectOf(t, e, fixed); got != geom.RectFromLTWH(0, 0, 8, 1) {
		t.Errorf("fixed = %v", got)
	}
	if got := rectOf(t, e, rest); got != geom.RectFromLTWH(10, 0, 20, 1) {
		t.Errorf("expanded = %v", got)
	}
}

func TestLooseFlexMayShrink(t *testing.T) {
	var slot core.ID
	e := frame(20, 1, func(ui *core.UI) {
		Row(ui, func() {
			slot = Flex{Factor: 1, Fit: geom.FlexFitLoose}.Show(ui, func() {
				Sized{Width: 5, Height: 1}.Show(ui, nil)
			}).ID
		})
	})
	if got := rectOf(t, e, slot).Width(); got != 5 {
		t.Errorf("loose flex width = %d, want 5", got)
	}
}

func TestMainAxisAlignment(t *testing.T) {
	tests := []struct {
		align geom.MainAxisAlignment
		want  [2]int
	}{
		{geom.MainAxisAlignmentStart, [2]int{0, 4}},
		{geom.MainAxisAlignmentCenter, [2]int{6, 10}},
		{geom.MainAxisAlignmentEnd, [2]int{12, 16}},
		{geom.MainAxisAlignmentSpaceBetween, [2]int{0, 16}},
		{geom.MainAxisAlignmentSpaceAround, [2]int{3, 13}},
		{geom.MainAxisAlignmentSpaceEvenly, [2]int{4, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			var a, b core.ID
			e := frame(20, 1, func(ui *core.UI) {
				List{MainAxisAlignment: tt.align}.Show(ui, func() {
					a = Sized{Width: 4, Height: 1}.Show(ui, nil).ID
					b = Sized{Width: 4, Height: 1}.Show(ui, nil).ID
				})
			})
			got := [2]int{rectOf(t, e, a).Left, rectOf(t, e, b).Left}
			if got != tt.want {
				t.Errorf("positions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrossAxisAlignment(t *testing.T) {
	tests := []struct {
		align geom.CrossAxisAlignment
		top   int
		h     int
	}{
		{geom.CrossAxisAlignmentStart, 0, 1},
		{geom.CrossAxisAlignmentCenter, 2, 1},
		{geom.CrossAxisAlignmentEnd, 4, 1},
		{geom.CrossAxisAlignmentStretch, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			var child core.ID
			e := frame(20, 5, func(ui *core.UI) {
				List{CrossAxisAlignment: tt.align}.Show(ui, func() {
					child = Filled{MinSize: geom.Size{Width: 3, Height: 1}}.Show(ui, nil).ID
				})
			})
			r := rectOf(t, e, child)
			if r.Top != tt.top || r.Height() != tt.h {
				t.Errorf("top=%d height=%d, want %d %d", r.Top, r.Height(), tt.top, tt.h)
			}
		})
	}
}

func TestMainAxisSizeMin(t *testing.T) {
	var row core.ID
	e := frame(20, 3, func(ui *core.UI) {
		Align{Align: geom.AlignTopLeft}.Show(ui, func() {
			row = List{MainAxisSize: geom.MainAxisSizeMin, Spacing: 1}.Show(ui, func() {
				Sized{Width: 3, Height: 1}.Show(ui, nil)
				Sized{Width: 3, Height: 1}.Show(ui, nil)
			}).ID
		})
	})
	if got := rectOf(t, e, row); got != geom.RectFromLTWH(0, 0, 7, 1) {
		t.Errorf("min-sized row = %v", got)
	}
}

func TestMainAxisSizeMaxFillsIncoming(t *testing.T) {
	var col core.ID
	e := frame(20, 6, func(ui *core.UI) {
		Align{Align: geom.AlignTopLeft}.Show(ui, func() {
			col = List{Axis: geom.AxisVertical}.Show(ui, func() {
				Sized{Width: 3, Height: 1}.Show(ui, nil)
			}).ID
		})
	})
	if got := rectOf(t, e, col); got.Height() != 6 || got.Width() != 3 {
		t.Errorf("max-sized column = %v", got)
	}
}

func TestRelativeFlowChild(t *testing.T) {
	var inline, anchored core.ID
	e := frame(20, 10, func(ui *core.UI) {
		Column(ui, func() {
			Flow{Anchor: geom.AlignBottomRight, Offset: geom.Absolute2(-3, -1)}.Show(ui, func() {
				anchored = Sized{Width: 3, Height: 1}.Show(ui, nil).ID
			})
			inline = Sized{Width: 4, Height: 1}.Show(ui, nil).ID
		})
	})
	if got := rectOf(t, e, anchored); got != geom.RectFromLTWH(17, 9, 3, 1) {
		t.Errorf("anchored = %v", got)
	}
	if got := rectOf(t, e, inline); got != geom.RectFromLTWH(0, 0, 4, 1) {
		t.Errorf("inline child should ignore the relative sibling, got %v", got)
	}
}
