package focus

import (
	"testing"

	"github.com/go-drift/cellui/pkg/geom"
)

// grid registers a 2x2 grid of one-row buttons "a" "b" / "c" "d".
func grid(s *Scope) {
	s.Begin()
	s.Add("a", geom.RectFromLTWH(0, 0, 4, 1))
	s.Add("b", geom.RectFromLTWH(10, 0, 4, 1))
	s.Add("c", geom.RectFromLTWH(0, 2, 4, 1))
	s.Add("d", geom.RectFromLTWH(10, 2, 4, 1))
}

func TestNextPreviousWrap(t *testing.T) {
	var s Scope
	if s.Next() {
		t.Fatal("Next on an empty scope should report false")
	}
	grid(&s)

	var got []any
	for range 5 {
		s.Next()
		k, _ := s.Focused()
		got = append(got, k)
	}
	want := []any{"a", "b", "c", "d", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next sequence = %v, want %v", got, want)
		}
	}

	s.Unfocus()
	s.Previous()
	if !s.IsFocused("d") {
		t.Errorf("Previous without focus should pick the last key")
	}
	s.Previous()
	if !s.IsFocused("c") {
		t.Errorf("Previous from d should focus c")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		from string
		dir  Direction
		want string
		ok   bool
	}{
		{"a", Right, "b", true},
		{"a", Down, "c", true},
		{"d", Up, "b", true},
		{"d", Left, "c", true},
		{"a", Up, "a", false},
		{"b", Right, "b", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+" "+tt.dir.String(), func(t *testing.T) {
			var s Scope
			grid(&s)
			s.Focus(tt.from)
			if ok := s.Move(tt.dir); ok != tt.ok {
				t.Errorf("Move = %v, want %v", ok, tt.ok)
			}
			if !s.IsFocused(tt.want) {
				k, _ := s.Focused()
				t.Errorf("focused %v, want %v", k, tt.want)
			}
		})
	}
}

func TestMovePrefersAligned(t *testing.T) {
	var s Scope
	s.Begin()
	s.Add("origin", geom.RectFromLTWH(0, 5, 2, 1))
	s.Add("far aligned", geom.RectFromLTWH(12, 5, 2, 1))
	s.Add("near diagonal", geom.RectFromLTWH(6, 0, 2, 1))
	s.Focus("origin")
	s.Move(Right)
	if !s.IsFocused("far aligned") {
		k, _ := s.Focused()
		t.Errorf("focused %v, want the aligned key", k)
	}
}

func TestMoveWithoutFocusFallsBack(t *testing.T) {
	var s Scope
	grid(&s)
	s.Move(Down)
	if !s.IsFocused("a") {
		t.Errorf("Move(Down) without focus should focus the first key")
	}

	s.Begin()
	s.Add("x", geom.Rect{})
	s.Add("y", geom.Rect{})
	s.Focus("x")
	s.Move(Right)
	if !s.IsFocused("y") {
		t.Errorf("keys without rects should traverse linearly")
	}
}

func TestBeginKeepsPreviousOrder(t *testing.T) {
	var s Scope
	grid(&s)
	s.Begin()
	if s.Len() != 4 {
		t.Fatalf("Len after Begin = %d, want the previous frame's 4", s.Len())
	}
	s.Add("only", geom.RectFromLTWH(0, 0, 1, 1))
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	s.Focus("gone")
	if s.IsFocused("only") {
		t.Error("IsFocused matched the wrong key")
	}
	s.Next()
	if !s.IsFocused("only") {
		t.Error("Next from a vanished key should restart at the first key")
	}
}
