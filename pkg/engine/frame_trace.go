package engine

import (
	"slices"
	"sync"
	"time"
)

const (
	frameTraceSamplesDefault   = 240
	defaultFrameTraceThreshold = 16667 * time.Microsecond
)

// FramePhaseTimings splits a frame's cost by phase, in milliseconds.
type FramePhaseTimings struct {
	DispatchMs float64 `json:"dispatchMs"`
	BuildMs    float64 `json:"buildMs"`
	PaintMs    float64 `json:"paintMs"`
	FlushMs    float64 `json:"flushMs"`
}

// FrameCounts is the work a frame did.
type FrameCounts struct {
	Nodes    int `json:"nodes"`
	Events   int `json:"events"`
	Commands int `json:"commands"`
}

// FrameSample describes one driven frame.
type FrameSample struct {
	Frame     uint64            `json:"frame"`
	Timestamp int64             `json:"ts"`
	FrameMs   float64           `json:"frameMs"`
	Phases    FramePhaseTimings `json:"phases"`
	Counts    FrameCounts       `json:"counts"`
}

// FrameTimeline is what /frames serves.
type FrameTimeline struct {
	Samples       []FrameSample `json:"samples"`
	DroppedFrames int           `json:"droppedFrames"`
	ThresholdMs   float64       `json:"thresholdMs"`
}

// FrameTraceBuffer keeps the most recent frame samples. The driver adds
// while the debug server reads, so all methods lock.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	ring      []FrameSample
	next      int
	full      bool
	dropped   int
	threshold time.Duration
}

// NewFrameTraceBuffer returns a buffer holding capacity samples. Frames
// slower than threshold count as dropped. Non-positive arguments select
// the defaults.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultFrameTraceThreshold
	}
	return &FrameTraceBuffer{ring: make([]FrameSample, capacity), threshold: threshold}
}

func (b *FrameTraceBuffer) Capacity() int { return len(b.ring) }

func (b *FrameTraceBuffer) Threshold() time.Duration { return b.threshold }

// Add records s, overwriting the oldest sample when full.
func (b *FrameTraceBuffer) Add(s FrameSample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.next] = s
	b.next++
	if b.next == len(b.ring) {
		b.next, b.full = 0, true
	}
	if s.FrameMs > durationToMillis(b.threshold) {
		b.dropped++
	}
}

// ordered returns the held samples oldest first. Callers hold mu.
func (b *FrameTraceBuffer) ordered() []FrameSample {
	if !b.full {
		return slices.Clone(b.ring[:b.next])
	}
	return append(slices.Clone(b.ring[b.next:]), b.ring[:b.next]...)
}

// Snapshot copies the held samples, oldest first, with the drop count.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FrameTimeline{
		Samples:       b.ordered(),
		DroppedFrames: b.dropped,
		ThresholdMs:   durationToMillis(b.threshold),
	}
}

// Since returns the held samples of frames after frame, oldest first.
func (b *FrameTraceBuffer) Since(frame uint64) []FrameSample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	all := b.ordered()
	i, _ := slices.BinarySearchFunc(all, frame+1, func(s FrameSample, f uint64) int {
		switch {
		case s.Frame < f:
			return -1
		case s.Frame > f:
			return 1
		}
		return 0
	})
	return all[i:]
}

// Filter keeps the samples whose frame took at least minMs and then the
// last limit of those. Zero disables either filter.
func (t FrameTimeline) Filter(minMs float64, limit int) FrameTimeline {
	if minMs > 0 {
		t.Samples = slices.DeleteFunc(slices.Clone(t.Samples), func(s FrameSample) bool {
			return s.FrameMs < minMs
		})
	}
	if limit > 0 && len(t.Samples) > limit {
		t.Samples = t.Samples[len(t.Samples)-limit:]
	}
	return t
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
