// Package debug exports engine snapshots as JSON, YAML and text trees, and
// serves them over HTTP while an app runs.
package debug

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cellui/pkg/core"
)

// Format selects a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat accepts json, yaml/yml and text/tree.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "tree", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("debug: unknown format %q", s)
}

// Encode renders s in format f.
func Encode(s *core.Snapshot, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(s)
	case FormatYAML:
		return YAML(s)
	case FormatText:
		return []byte(Tree(s) + "\n"), nil
	}
	return nil, fmt.Errorf("debug: unknown format %q", f)
}

// JSON encodes s as indented JSON.
func JSON(s *core.Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAML encodes s as YAML.
func YAML(s *core.Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

var (
	enumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hoverStyle  = lipgloss.NewStyle().Bold(true)
	maxTreeDeep = 500
)

// Tree renders the widget tree, one line per node:
//
//	Root 0v1 {0,0 80x24}
//	└── List 1v1 {0,0 80x3}
//	    ├── Label 2v1 {0,0 5x1}
//	    └── MouseArea 3v1 {0,1 6x1} mouse hovered
func Tree(s *core.Snapshot) string {
	if s == nil || s.Root == nil {
		return "<empty>"
	}
	return buildTree(s.Root, 0).String()
}

func buildTree(n *core.SnapshotNode, depth int) *tree.Tree {
	t := tree.Root(nodeLabel(n)).EnumeratorStyle(enumStyle)
	if depth >= maxTreeDeep {
		if len(n.Children) > 0 {
			t.Child("…")
		}
		return t
	}
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(nodeLabel(c))
			continue
		}
		t.Child(buildTree(c, depth+1))
	}
	return t
}

func nodeLabel(n *core.SnapshotNode) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	sb.WriteByte(' ')
	sb.WriteString(n.ID.String())
	if n.Rect != nil {
		sb.WriteByte(' ')
		sb.WriteString(n.Rect.String())
	} else {
		sb.WriteString(" (no layout)")
	}
	if n.Interest != "" {
		sb.WriteString(" " + n.Interest)
	}
	if n.Layer {
		sb.WriteString(" layer")
	}
	if n.Clipping {
		sb.WriteString(" clip")
	}
	if n.ClippedBy != nil {
		sb.WriteString(" clipped-by=" + n.ClippedBy.String())
	}
	if n.Hovered {
		return hoverStyle.Render(sb.String() + " hovered")
	}
	return sb.String()
}

// Layers renders the router layers, newest first, as an indented list.
func Layers(s *core.Snapshot) string {
	var sb strings.Builder
	write := func(name string, layers []core.LayerSnapshot) {
		fmt.Fprintf(&sb, "%s:\n", name)
		for i := len(layers) - 1; i >= 0; i-- {
			fmt.Fprintf(&sb, "  layer %d:", i)
			if len(layers[i].Widgets) == 0 {
				sb.WriteString(" (empty)")
			}
			sb.WriteByte('\n')
			for _, w := range layers[i].Widgets {
				fmt.Fprintf(&sb, "    %s\n", w)
			}
		}
	}
	write("mouse", s.Mouse)
	write("keyboard", s.Keyboard)
	return sb.String()
}
