package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/engine"
	"github.com/go-drift/cellui/pkg/errors"
)

// Server serves the latest published snapshot over HTTP.
//
// The engine is single-threaded, so handlers never touch it. The host
// publishes a snapshot after each frame and handlers read that copy.
type Server struct {
	mu       sync.Mutex
	snap     *core.Snapshot
	messages []string
	trace    *engine.FrameTraceBuffer
	runtime  *runtimeRing
	stopRT   chan struct{}
	server   *http.Server
	listener net.Listener
	log      *slog.Logger
}

// NewServer returns a stopped server.
func NewServer() *Server {
	return &Server{runtime: newRuntimeRing(runtimeSamples), log: logger.WithComponent("debug")}
}

// Publish replaces the served snapshot and debug messages.
func (s *Server) Publish(snap *core.Snapshot, messages []string) {
	s.mu.Lock()
	s.snap = snap
	if messages != nil {
		s.messages = messages
	}
	s.mu.Unlock()
}

// SetTrace makes /frames serve the timings recorded in b.
func (s *Server) SetTrace(b *engine.FrameTraceBuffer) {
	s.mu.Lock()
	s.trace = b
	s.mu.Unlock()
}

func (s *Server) latest() (*core.Snapshot, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.messages
}

// Handler returns the HTTP routes:
//
//	/health     liveness
//	/tree       snapshot as JSON, or YAML with ?format=yaml
//	/tree.txt   widget tree as text
//	/layers     router layers as text
//	/messages   debug messages of the last frame as JSON
//	/frames     recent frame timings; ?min_ms= and ?limit= filter them
//	/runtime    heap and GC samples taken every RuntimeInterval
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /tree", s.handleTree)
	mux.HandleFunc("GET /tree.txt", s.handleTreeText)
	mux.HandleFunc("GET /layers", s.handleLayers)
	mux.HandleFunc("GET /messages", s.handleMessages)
	mux.HandleFunc("GET /frames", s.handleFrames)
	mux.HandleFunc("GET /runtime", s.handleRuntime)
	return mux
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when the port is 0.
func (s *Server) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrap("debug.Start", errors.KindDebug, err)
	}

	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener
	s.stopRT = make(chan struct{})
	go sampleRuntime(s.runtime, RuntimeInterval, s.stopRT)

	go func() {
		defer errors.Recover("debug.Serve")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			if s.stopRT != nil {
				close(s.stopRT)
				s.stopRT = nil
			}
			s.mu.Unlock()
			errors.Report(&errors.CellError{Op: "debug.Serve", Kind: errors.KindDebug, Err: err})
		}
	}()

	s.log.Info("debug server listening", "addr", listener.Addr().String())
	return listener.Addr().String(), nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	if s.stopRT != nil {
		close(s.stopRT)
		s.stopRT = nil
	}
	s.mu.Unlock()

	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		s.log.Debug("debug server shutdown", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, _ := s.latest()
	resp := struct {
		Status string `json:"status"`
		Frame  uint64 `json:"frame"`
	}{Status: "ok"}
	if snap != nil {
		resp.Frame = snap.Frame
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := Encode(snap, format)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode error: %v", err), http.StatusInternalServerError)
		return
	}
	switch format {
	case FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(data)
}

func (s *Server) handleTreeText(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, Tree(snap))
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, Layers(snap))
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	_, messages := s.latest()
	if messages == nil {
		messages = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	trace := s.trace
	s.mu.Unlock()
	if trace == nil {
		http.Error(w, "frame tracing disabled", http.StatusServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	minMs, _ := strconv.ParseFloat(r.URL.Query().Get("min_ms"), 64)
	resp := trace.Snapshot().Filter(minMs, limit)

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.runtime.all())
}

func (s *Server) snapshot(w http.ResponseWriter) (*core.Snapshot, bool) {
	snap, _ := s.latest()
	if snap == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return nil, false
	}
	return snap, true
}
