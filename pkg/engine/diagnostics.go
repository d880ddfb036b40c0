package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

// HUDPosition specifies where the diagnostics HUD is drawn.
type HUDPosition int

const (
	HUDTopLeft HUDPosition = iota
	HUDTopRight
	HUDBottomLeft
	HUDBottomRight
)

// HUDConfig controls what the diagnostics HUD shows.
type HUDConfig struct {
	// ShowFPS draws the frame rate and the last frame's cost.
	ShowFPS bool
	// ShowFrameGraph draws a bar per recent frame, scaled to TargetFrameTime.
	ShowFrameGraph bool
	Position       HUDPosition
	// GraphSamples is the graph width in cells. Defaults to 16.
	GraphSamples int
	// TargetFrameTime colors slower frames as over budget. Defaults to the
	// driver's frame interval.
	TargetFrameTime time.Duration
	Style           paint.Style
}

// DefaultHUDConfig returns a HUD with the frame rate and graph in the top
// right corner.
func DefaultHUDConfig() *HUDConfig {
	return &HUDConfig{
		ShowFPS:        true,
		ShowFrameGraph: true,
		Position:       HUDTopRight,
		GraphSamples:   16,
		Style:          paint.Style{}.Foreground(paint.Indexed(15)).Background(paint.Indexed(236)),
	}
}

// FrameTimingBuffer is a ring buffer of frame durations.
type FrameTimingBuffer struct {
	mu      sync.RWMutex
	samples []time.Duration
	index   int
	count   int
}

// NewFrameTimingBuffer returns a buffer holding capacity durations.
// capacity <= 0 selects 60.
func NewFrameTimingBuffer(capacity int) *FrameTimingBuffer {
	if capacity <= 0 {
		capacity = 60
	}
	return &FrameTimingBuffer{samples: make([]time.Duration, capacity)}
}

// Add records a duration, evicting the oldest when full.
func (b *FrameTimingBuffer) Add(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = d
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
}

// Samples returns the durations oldest first.
func (b *FrameTimingBuffer) Samples() []time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return nil
	}
	out := make([]time.Duration, b.count)
	if b.count < len(b.samples) {
		copy(out, b.samples[:b.count])
	} else {
		copy(out, b.samples[b.index:])
		copy(out[len(b.samples)-b.index:], b.samples[:b.index])
	}
	return out
}

// Count returns the number of stored durations.
func (b *FrameTimingBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Average returns the mean duration, or zero when empty.
func (b *FrameTimingBuffer) Average() time.Duration {
	samples := b.Samples()
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

var graphRunes = []rune("▁▂▃▄▅▆▇█")

// hud paints frame statistics over the app after each frame.
type hud struct {
	cfg       HUDConfig
	trace     *FrameTraceBuffer
	intervals *FrameTimingBuffer
	costs     *FrameTimingBuffer
	lastFrame uint64
	lastAt    time.Time
}

// ShowHUD draws a diagnostics overlay on every frame. The statistics lag
// one frame: a frame's own cost is only known after it is flushed.
func (d *Driver) ShowHUD(cfg *HUDConfig) {
	if cfg == nil {
		cfg = DefaultHUDConfig()
	}
	c := *cfg
	if c.GraphSamples <= 0 {
		c.GraphSamples = 16
	}
	if c.TargetFrameTime <= 0 {
		c.TargetFrameTime = d.interval
	}
	h := &hud{
		cfg:       c,
		trace:     d.trace,
		intervals: NewFrameTimingBuffer(60),
		costs:     NewFrameTimingBuffer(c.GraphSamples),
	}
	d.OnFrame(h.paint)
}

// record pulls the samples added since the previous frame.
func (h *hud) record() {
	now := animation.Now()
	if !h.lastAt.IsZero() {
		h.intervals.Add(now.Sub(h.lastAt))
	}
	h.lastAt = now
	for _, s := range h.trace.Since(h.lastFrame) {
		h.costs.Add(time.Duration(s.FrameMs * float64(time.Millisecond)))
		h.lastFrame = s.Frame
	}
}

func (h *hud) lines() []string {
	var lines []string
	if h.cfg.ShowFPS {
		fps := 0.0
		if avg := h.intervals.Average(); avg > 0 {
			fps = float64(time.Second) / float64(avg)
		}
		var last time.Duration
		if costs := h.costs.Samples(); len(costs) > 0 {
			last = costs[len(costs)-1]
		}
		lines = append(lines, fmt.Sprintf("%3.0f fps %5.1fms", fps, float64(last)/float64(time.Millisecond)))
	}
	if h.cfg.ShowFrameGraph {
		lines = append(lines, "")
	}
	return lines
}

func (h *hud) paint(_ *core.Engine, s *paint.Surface) {
	h.record()
	lines := h.lines()
	if len(lines) == 0 {
		return
	}
	width := h.cfg.GraphSamples
	for _, l := range lines {
		width = max(width, paint.TextWidth(l))
	}
	box := h.place(geom.Vec{X: width, Y: len(lines)}, s.Size())
	canvas := paint.NewCanvas(s).Crop(box)
	canvas.Fill(' ', h.cfg.Style)

	for y, l := range lines {
		if l != "" {
			canvas.Text(geom.Pos{Y: y}, l, h.cfg.Style)
		}
	}
	if h.cfg.ShowFrameGraph {
		h.paintGraph(canvas, len(lines)-1)
	}
}

func (h *hud) paintGraph(canvas paint.Canvas, y int) {
	costs := h.costs.Samples()
	over := h.cfg.Style.Foreground(paint.Indexed(1))
	under := h.cfg.Style.Foreground(paint.Indexed(2))
	target := h.cfg.TargetFrameTime
	for i, c := range costs {
		level := int(float64(c) / float64(target) * float64(len(graphRunes)-1))
		level = min(max(level, 0), len(graphRunes)-1)
		style := under
		if c > target {
			style = over
		}
		canvas.Set(geom.Pos{X: i, Y: y}, paint.Cell{Grapheme: string(graphRunes[level]), Width: 1, Style: style})
	}
}

func (h *hud) place(size, screen geom.Vec) geom.Rect {
	size = geom.Vec{X: min(size.X, screen.X), Y: min(size.Y, screen.Y)}
	var pos geom.Pos
	switch h.cfg.Position {
	case HUDTopRight:
		pos.X = screen.X - size.X
	case HUDBottomLeft:
		pos.Y = screen.Y - size.Y
	case HUDBottomRight:
		pos = geom.Pos{X: screen.X - size.X, Y: screen.Y - size.Y}
	}
	return geom.RectFromPosSize(pos, size)
}
