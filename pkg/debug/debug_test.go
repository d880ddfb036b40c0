package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/engine"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/widgets"
)

func sampleSnapshot(t *testing.T) *core.Snapshot {
	t.Helper()
	e := core.New(geom.RectFromLTWH(0, 0, 20, 4))
	e.Frame(func(ui *core.UI) {
		widgets.Column(ui, func() {
			widgets.Text(ui, "title")
			widgets.OnClick(ui, func() {
				widgets.Text(ui, "[ok]")
			})
			widgets.Float{}.Show(ui, func() {
				widgets.KeyArea{}.Show(ui, nil)
			})
		})
	})
	return e.Snapshot()
}

func TestJSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)
	data, err := JSON(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Frame uint64 `json:"frame"`
		Nodes int    `json:"nodes"`
		Root  struct {
			Type     string `json:"type"`
			Children []struct {
				Type string `json:"type"`
			} `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, data)
	}
	if decoded.Frame != 1 || decoded.Nodes != snap.Nodes {
		t.Errorf("frame=%d nodes=%d, want 1 %d", decoded.Frame, decoded.Nodes, snap.Nodes)
	}
	if len(decoded.Root.Children) != 1 || decoded.Root.Children[0].Type != "List" {
		t.Errorf("root children = %+v, want one List", decoded.Root.Children)
	}
}

func TestYAML(t *testing.T) {
	data, err := YAML(sampleSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	for _, key := range []string{"frame", "client", "root", "mouse", "keyboard"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("yaml missing %q:\n%s", key, data)
		}
	}
}

func TestTree(t *testing.T) {
	out := Tree(sampleSnapshot(t))
	for _, want := range []string{"List", "Label", "MouseArea", "mouse", "Float", "layer", "KeyArea"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	if got := Tree(nil); got != "<empty>" {
		t.Errorf("Tree(nil) = %q", got)
	}
}

func TestLayers(t *testing.T) {
	out := Layers(sampleSnapshot(t))
	if !strings.HasPrefix(out, "mouse:\n") || !strings.Contains(out, "keyboard:\n") {
		t.Errorf("unexpected layers output:\n%s", out)
	}
	if !strings.Contains(out, "layer 1:") {
		t.Errorf("float layer missing:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"tree", FormatText, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestServerRoutes(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tree")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("/tree before publish = %d, want 503", resp.StatusCode)
	}

	s.Publish(sampleSnapshot(t), []string{"hello"})

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/health", "application/json", `"status":"ok"`},
		{"/tree", "application/json", `"type": "List"`},
		{"/tree?format=yaml", "application/yaml", "type: List"},
		{"/tree.txt", "text/plain; charset=utf-8", "MouseArea"},
		{"/layers", "text/plain; charset=utf-8", "keyboard:"},
		{"/messages", "application/json", `["hello"]`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, body)
			}
		})
	}

	resp, err = http.Post(ts.URL+"/tree", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /tree = %d, want 405", resp.StatusCode)
	}
}

func TestServerStartStop(t *testing.T) {
	s := NewServer()
	addr, err := s.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start debug server: %v", err)
	}

	if again, err := s.Start("127.0.0.1:0"); err != nil || again != addr {
		t.Errorf("second Start = %q, %v; want %q", again, err, addr)
	}

	url := fmt.Sprintf("http://%s/health", addr)
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server not ready: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/runtime", addr))
	if err != nil {
		t.Fatal(err)
	}
	var samples []RuntimeSample
	err = json.NewDecoder(resp.Body).Decode(&samples)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	for _, sample := range samples {
		if sample.HeapSys == 0 || sample.Goroutines == 0 {
			t.Errorf("empty runtime sample %+v", sample)
		}
	}

	s.Stop()
	if _, err := http.Get(url); err == nil {
		t.Error("server still answering after Stop")
	}
}

func TestServerFrames(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/frames")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("/frames without trace = %d, want 503", resp.StatusCode)
	}

	b := engine.NewFrameTraceBuffer(8, 0)
	for i := 1; i <= 4; i++ {
		b.Add(engine.FrameSample{Frame: uint64(i), FrameMs: float64(i * 10)})
	}
	s.SetTrace(b)

	resp, err = http.Get(ts.URL + "/frames?min_ms=20&limit=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var tl engine.FrameTimeline
	if err := json.NewDecoder(resp.Body).Decode(&tl); err != nil {
		t.Fatal(err)
	}
	if len(tl.Samples) != 2 || tl.Samples[0].Frame != 3 || tl.Samples[1].Frame != 4 {
		t.Errorf("samples = %+v, want frames 3 and 4", tl.Samples)
	}
}

func TestRuntimeRing(t *testing.T) {
	r := newRuntimeRing(3)
	if got := r.all(); len(got) != 0 {
		t.Fatalf("empty ring = %v", got)
	}
	for i := int64(1); i <= 5; i++ {
		r.add(RuntimeSample{Timestamp: i})
	}
	got := r.all()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int64{3, 4, 5} {
		if got[i].Timestamp != want {
			t.Errorf("sample %d = %d, want %d", i, got[i].Timestamp, want)
		}
	}
}

func TestSampleRuntimeStops(t *testing.T) {
	r := newRuntimeRing(4)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		sampleRuntime(r, time.Hour, stop)
		close(done)
	}()
	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sampler did not stop")
	}
	if n := len(r.all()); n != 1 {
		t.Errorf("samples = %d, want the initial one", n)
	}
}
