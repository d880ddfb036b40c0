package core

import (
	"fmt"

	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
)

// SnapshotNode is a serializable view of one node after layout.
type SnapshotNode struct {
	ID        ID              `json:"id" yaml:"id"`
	Type      string          `json:"type" yaml:"type"`
	Rect      *geom.Rect      `json:"rect,omitempty" yaml:"rect,omitempty"`
	Interest  string          `json:"interest,omitempty" yaml:"interest,omitempty"`
	ClippedBy *ID             `json:"clippedBy,omitempty" yaml:"clippedBy,omitempty"`
	Clipping  bool            `json:"clipping,omitempty" yaml:"clipping,omitempty"`
	Layer     bool            `json:"layer,omitempty" yaml:"layer,omitempty"`
	Hovered   bool            `json:"hovered,omitempty" yaml:"hovered,omitempty"`
	State     map[string]any  `json:"state,omitempty" yaml:"state,omitempty"`
	Children  []*SnapshotNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// LayerSnapshot lists one router layer's registrations, in dispatch order.
type LayerSnapshot struct {
	Widgets []string `json:"widgets" yaml:"widgets"`
}

// Snapshot is the engine state served by the debug tools.
type Snapshot struct {
	Frame    uint64          `json:"frame" yaml:"frame"`
	Client   geom.Rect       `json:"client" yaml:"client"`
	Nodes    int             `json:"nodes" yaml:"nodes"`
	Root     *SnapshotNode   `json:"root" yaml:"root"`
	Mouse    []LayerSnapshot `json:"mouse" yaml:"mouse"`
	Keyboard []LayerSnapshot `json:"keyboard" yaml:"keyboard"`
	Hovered  []ID            `json:"hovered,omitempty" yaml:"hovered,omitempty"`
}

// Snapshot captures the tree, layout and router layers.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Frame:  e.frame,
		Client: e.rect,
		Nodes:  e.nodes.Len(),
		Root:   e.snapshotNode(e.root),
	}
	for _, layer := range e.router.Mouse.Layers() {
		ls := LayerSnapshot{}
		for _, entry := range layer {
			ls.Widgets = append(ls.Widgets, fmt.Sprintf("%s %s", entry.ID, entry.Value))
		}
		s.Mouse = append(s.Mouse, ls)
	}
	for _, layer := range e.router.Keyboard.Layers() {
		ls := LayerSnapshot{}
		for _, entry := range layer {
			ls.Widgets = append(ls.Widgets, entry.ID.String())
		}
		s.Keyboard = append(s.Keyboard, ls)
	}
	for id := range e.nodes.All() {
		if e.router.Hovered(id) {
			s.Hovered = append(s.Hovered, id)
		}
	}
	return s
}

func (e *Engine) snapshotNode(id ID) *SnapshotNode {
	n, ok := e.nodes.Get(id)
	if !ok {
		return nil
	}
	sn := &SnapshotNode{ID: id, Type: n.TypeName, Hovered: e.router.Hovered(id)}
	if ln, ok := e.layout.Get(id); ok {
		r := ln.Rect
		sn.Rect = &r
		if ln.Interest != input.InterestNone {
			sn.Interest = ln.Interest.String()
		}
		if !ln.ClippedBy.IsNil() {
			c := ln.ClippedBy
			sn.ClippedBy = &c
		}
		sn.Clipping = ln.Clipping
		sn.Layer = ln.Layer
	}
	if d, ok := n.Widget.(Describer); ok {
		sn.State = d.Describe()
	}
	for _, child := range n.Children {
		if c := e.snapshotNode(child); c != nil {
			sn.Children = append(sn.Children, c)
		}
	}
	return sn
}
