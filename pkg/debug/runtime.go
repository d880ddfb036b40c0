package debug

import (
	"runtime"
	"sync"
	"time"
)

const (
	// RuntimeInterval is how often the server samples the Go runtime.
	RuntimeInterval = 5 * time.Second
	runtimeSamples  = 120
)

// RuntimeSample is one reading of heap and GC statistics.
type RuntimeSample struct {
	Timestamp    int64  `json:"ts"`
	Goroutines   int    `json:"goroutines"`
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	HeapSys      uint64 `json:"heapSys"`
	NumGC        uint32 `json:"numGC"`
	LastGCTime   int64  `json:"lastGCTime"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
	LastPauseNs  uint64 `json:"lastPauseNs"`
}

// runtimeRing keeps the most recent samples.
type runtimeRing struct {
	mu      sync.RWMutex
	samples []RuntimeSample
	next    int
	count   int
}

func newRuntimeRing(capacity int) *runtimeRing {
	return &runtimeRing{samples: make([]RuntimeSample, max(capacity, 1))}
}

func (r *runtimeRing) add(s RuntimeSample) {
	r.mu.Lock()
	r.samples[r.next] = s
	r.next = (r.next + 1) % len(r.samples)
	r.count = min(r.count+1, len(r.samples))
	r.mu.Unlock()
}

// all returns the samples oldest first.
func (r *runtimeRing) all() []RuntimeSample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuntimeSample, 0, r.count)
	start := (r.next - r.count + len(r.samples)) % len(r.samples)
	for i := range r.count {
		out = append(out, r.samples[(start+i)%len(r.samples)])
	}
	return out
}

func readRuntimeSample(now time.Time) RuntimeSample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	var lastPause uint64
	if stats.NumGC > 0 {
		lastPause = stats.PauseNs[(stats.NumGC+255)%256]
	}
	var lastGC int64
	if stats.LastGC > 0 {
		lastGC = time.Unix(0, int64(stats.LastGC)).UnixMilli()
	}
	return RuntimeSample{
		Timestamp:    now.UnixMilli(),
		Goroutines:   runtime.NumGoroutine(),
		HeapAlloc:    stats.HeapAlloc,
		HeapInuse:    stats.HeapInuse,
		HeapSys:      stats.HeapSys,
		NumGC:        stats.NumGC,
		LastGCTime:   lastGC,
		PauseTotalNs: stats.PauseTotalNs,
		LastPauseNs:  lastPause,
	}
}

// sampleRuntime records a sample now and then every interval until stop
// is closed.
func sampleRuntime(ring *runtimeRing, interval time.Duration, stop <-chan struct{}) {
	ring.add(readRuntimeSample(time.Now()))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			ring.add(readRuntimeSample(now))
		case <-stop:
			return
		}
	}
}
