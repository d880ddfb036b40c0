package core

import (
	"github.com/go-drift/cellui/pkg/arena"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/input"
)

// ID is a widget handle.
type ID = arena.ID

// Node is one widget in the tree. Children are owned; Parent is a handle
// lookup, never a reference.
type Node struct {
	Widget   any
	Type     TypeID
	TypeName string
	Parent   ID
	Children []ID
	// Next counts the children visited so far this frame.
	Next int
}

// LayoutNode is the layout result for one node.
type LayoutNode struct {
	// Rect is relative to the parent during layout and absolute afterwards.
	Rect     geom.Rect
	Interest input.Interest
	// ClippedBy is the nearest clipping ancestor, or the nil handle.
	ClippedBy ID
	// Clipping reports whether this node starts a clip region.
	Clipping bool
	// Layer reports whether this node opened an input layer.
	Layer bool
}
