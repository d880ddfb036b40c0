package core

import (
	"github.com/go-drift/cellui/pkg/errors"
)

const rootType TypeID = 0

// Begin opens a widget call. The node at the parent's next child position is
// reused when its type matches; otherwise that position is given a fresh
// node and the old subtree is discarded. The widget's Update runs with
// props and its response is returned. Every Begin must be paired with End.
func Begin[P, R any](ui *UI, t *Type[P, R], props P) (ID, R) {
	e := ui.engine()
	id, w := e.reconcile(t.id, t.name, func() any { return t.new() })
	e.stack = append(e.stack, id)
	resp := w.(Updater[P, R]).Update(props)
	return id, resp
}

// End closes the widget call opened for id and prunes its unvisited
// children.
func (ui *UI) End(id ID) {
	e := ui.engine()
	n := len(e.stack)
	if n == 0 {
		errors.Violation("core.End", id.String(), "no widget is open")
	}
	top := e.stack[n-1]
	if top != id {
		errors.Violation("core.End", id.String(), "expected %s to be closed first", top)
	}
	e.stack = e.stack[:n-1]
	e.prune(id)
}

// Show calls a leaf widget.
func Show[P, R any](ui *UI, t *Type[P, R], props P) Response[R] {
	id, resp := Begin(ui, t, props)
	ui.End(id)
	return Response[R]{ID: id, Value: resp}
}

// ShowChildren calls a container widget and runs children inside it.
func ShowChildren[P, R any](ui *UI, t *Type[P, R], props P, children func()) Response[R] {
	id, resp := Begin(ui, t, props)
	if children != nil {
		children()
	}
	ui.End(id)
	return Response[R]{ID: id, Value: resp}
}

func (e *Engine) current() ID {
	if n := len(e.stack); n > 0 {
		return e.stack[n-1]
	}
	return e.root
}

func (e *Engine) reconcile(typ TypeID, name string, alloc func() any) (ID, any) {
	parent := e.current()
	p := e.nodes.Ptr(parent)
	if p == nil {
		errors.Violation("core.Begin", parent.String(), "parent widget no longer exists")
	}

	if p.Next < len(p.Children) {
		id := p.Children[p.Next]
		n := e.nodes.Ptr(id)
		if n == nil {
			errors.Violation("core.Begin", id.String(), "child handle is stale")
		}
		if n.Type == typ {
			p.Next++
			n.Next = 0
			return id, n.Widget
		}
		e.log.Debug("widget type changed", "widget", id, "from", n.TypeName, "to", name)
		e.removeSubtree(id)
	}

	w := alloc()
	id := e.nodes.Insert(Node{Widget: w, Type: typ, TypeName: name, Parent: parent})
	// Insert may have grown the arena; fetch the parent again.
	p = e.nodes.Ptr(parent)
	if p.Next < len(p.Children) {
		p.Children[p.Next] = id
	} else {
		p.Children = append(p.Children, id)
	}
	p.Next++
	return id, w
}

// prune discards the children of id that were not visited this frame.
func (e *Engine) prune(id ID) {
	n := e.nodes.Ptr(id)
	if n == nil {
		errors.Violation("core.End", id.String(), "widget no longer exists")
	}
	if n.Next >= len(n.Children) {
		return
	}
	dead := append([]ID(nil), n.Children[n.Next:]...)
	n.Children = n.Children[:n.Next]
	for _, child := range dead {
		e.removeSubtree(child)
	}
}

// removeSubtree frees id and all of its descendants, breadth first, and
// records them for purging from the router and layout.
func (e *Engine) removeSubtree(id ID) {
	queue := []ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n, ok := e.nodes.Remove(cur)
		if !ok {
			continue
		}
		e.removed = append(e.removed, cur)
		queue = append(queue, n.Children...)
	}
}
