package engine

import (
	"testing"
	"time"
)

func TestFrameTraceBufferWraps(t *testing.T) {
	b := NewFrameTraceBuffer(3, 10*time.Millisecond)
	for i := 1; i <= 5; i++ {
		b.Add(FrameSample{Frame: uint64(i), FrameMs: float64(i * 4)})
	}

	tl := b.Snapshot()
	if len(tl.Samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(tl.Samples))
	}
	for i, want := range []uint64{3, 4, 5} {
		if tl.Samples[i].Frame != want {
			t.Errorf("sample %d frame = %d, want %d", i, tl.Samples[i].Frame, want)
		}
	}
	// 12, 16 and 20ms exceed the 10ms threshold.
	if tl.DroppedFrames != 3 {
		t.Errorf("DroppedFrames = %d, want 3", tl.DroppedFrames)
	}
	if tl.ThresholdMs != 10 {
		t.Errorf("ThresholdMs = %v", tl.ThresholdMs)
	}
}

func TestFrameTraceDefaults(t *testing.T) {
	b := NewFrameTraceBuffer(0, 0)
	if b.Capacity() != frameTraceSamplesDefault || b.Threshold() != defaultFrameTraceThreshold {
		t.Errorf("defaults = %d, %v", b.Capacity(), b.Threshold())
	}
	if tl := b.Snapshot(); len(tl.Samples) != 0 {
		t.Errorf("empty buffer returned %d samples", len(tl.Samples))
	}
}

func TestFrameTraceSince(t *testing.T) {
	b := NewFrameTraceBuffer(4, 0)
	for i := 1; i <= 6; i++ {
		b.Add(FrameSample{Frame: uint64(i)})
	}
	tests := []struct {
		after uint64
		want  []uint64
	}{
		{0, []uint64{3, 4, 5, 6}},
		{4, []uint64{5, 6}},
		{6, nil},
	}
	for _, tt := range tests {
		got := b.Since(tt.after)
		if len(got) != len(tt.want) {
			t.Errorf("Since(%d) = %d samples, want %d", tt.after, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Frame != tt.want[i] {
				t.Errorf("Since(%d)[%d] = frame %d, want %d", tt.after, i, got[i].Frame, tt.want[i])
			}
		}
	}
}

func TestFrameTimelineFilter(t *testing.T) {
	tl := FrameTimeline{Samples: []FrameSample{
		{Frame: 1, FrameMs: 2},
		{Frame: 2, FrameMs: 30},
		{Frame: 3, FrameMs: 5},
		{Frame: 4, FrameMs: 40},
		{Frame: 5, FrameMs: 50},
	}}

	tests := []struct {
		minMs float64
		limit int
		want  []uint64
	}{
		{0, 0, []uint64{1, 2, 3, 4, 5}},
		{20, 0, []uint64{2, 4, 5}},
		{0, 2, []uint64{4, 5}},
		{20, 1, []uint64{5}},
	}
	for _, tt := range tests {
		got := tl.Filter(tt.minMs, tt.limit).Samples
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%v, %d) = %d samples, want %d", tt.minMs, tt.limit, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Frame != tt.want[i] {
				t.Errorf("Filter(%v, %d)[%d] = frame %d, want %d", tt.minMs, tt.limit, i, got[i].Frame, tt.want[i])
			}
		}
	}
}
