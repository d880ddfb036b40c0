package testing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/cellui/pkg/core"
)

// UpdateEnv names the environment variable that rewrites golden files
// instead of comparing against them.
const UpdateEnv = "CELLUI_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Golden is a textual capture that can be compared to a file.
type Golden struct {
	text string
}

// String returns the captured text.
func (g Golden) String() string { return g.text }

// CaptureScreen captures the painted screen, one line per row with trailing
// blanks trimmed.
func (t *WidgetTester) CaptureScreen() Golden {
	rows := t.Rows()
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, " ")
	}
	return Golden{text: strings.Join(rows, "\n") + "\n"}
}

// CaptureTree captures the widget tree of the last frame as YAML. IDs are
// replaced by per-type counters so captures do not depend on arena slots.
func (t *WidgetTester) CaptureTree() (Golden, error) {
	root := stableTree(t.engine.Snapshot().Root, &typeCounter{})
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return Golden{}, err
	}
	if err := enc.Close(); err != nil {
		return Golden{}, err
	}
	return Golden{text: buf.String()}, nil
}

// treeNode is the ID-free form of a snapshot node.
type treeNode struct {
	Name     string         `yaml:"name"`
	Rect     string         `yaml:"rect,omitempty"`
	Interest string         `yaml:"interest,omitempty"`
	Layer    bool           `yaml:"layer,omitempty"`
	Clipping bool           `yaml:"clipping,omitempty"`
	State    map[string]any `yaml:"state,omitempty"`
	Children []*treeNode    `yaml:"children,omitempty"`
}

func stableTree(n *core.SnapshotNode, counter *typeCounter) *treeNode {
	if n == nil {
		return nil
	}
	out := &treeNode{
		Name:     counter.next(n.Type),
		Interest: n.Interest,
		Layer:    n.Layer,
		Clipping: n.Clipping,
		State:    n.State,
	}
	if n.Rect != nil {
		out.Rect = n.Rect.String()
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, stableTree(child, counter))
	}
	return out
}

// typeCounter assigns stable names like "Label#0", "Label#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

// MatchesFile compares the capture against a golden file. On mismatch it
// reports a diff and instructions for updating. When CELLUI_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (g Golden) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := g.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := g.Diff(string(expected)); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes the capture to path, creating directories as needed.
func (g Golden) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(g.text), 0o644)
}

// Diff returns a line diff between expected and the capture. Returns the
// empty string if equal.
func (g Golden) Diff(expected string) string {
	if expected == g.text {
		return ""
	}
	return unifiedDiff(expected, g.text)
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
