package input

import (
	"iter"

	"github.com/go-drift/cellui/pkg/arena"
)

// Entry is one registration inside a layer.
type Entry[T any] struct {
	ID    arena.ID
	Value T
}

type layerRef struct {
	root  arena.ID
	index int
}

// Layered is a stack of z-order layers. Registrations go to the current
// layer; iteration visits the newest layer first and registration order
// within a layer.
type Layered[T any] struct {
	layers [][]Entry[T]
	stack  []layerRef
}

// PushLayer opens a new layer rooted at id and makes it current.
func (l *Layered[T]) PushLayer(root arena.ID) {
	l.stack = append(l.stack, layerRef{root: root, index: len(l.layers)})
	l.layers = append(l.layers, nil)
}

// PopLayer closes the current layer. The layer's registrations stay.
// It reports false when no layer is open.
func (l *Layered[T]) PopLayer() bool {
	if len(l.stack) == 0 {
		return false
	}
	l.stack = l.stack[:len(l.stack)-1]
	return true
}

// CurrentRoot returns the root of the current layer.
func (l *Layered[T]) CurrentRoot() (arena.ID, bool) {
	if len(l.stack) == 0 {
		return arena.Nil, false
	}
	return l.stack[len(l.stack)-1].root, true
}

// Insert appends a registration to the current layer, opening an unrooted
// base layer if none is open.
func (l *Layered[T]) Insert(id arena.ID, v T) {
	if len(l.stack) == 0 {
		l.PushLayer(arena.Nil)
	}
	top := l.stack[len(l.stack)-1].index
	l.layers[top] = append(l.layers[top], Entry[T]{ID: id, Value: v})
}

// Remove drops every registration for id and any open layer rooted at it.
func (l *Layered[T]) Remove(id arena.ID) {
	stack := l.stack[:0]
	for _, ref := range l.stack {
		if ref.root != id {
			stack = append(stack, ref)
		}
	}
	l.stack = stack
	for i, layer := range l.layers {
		kept := layer[:0]
		for _, e := range layer {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		l.layers[i] = kept
	}
}

// Contains reports whether id is registered in any layer.
func (l *Layered[T]) Contains(id arena.ID) bool {
	for _, layer := range l.layers {
		for _, e := range layer {
			if e.ID == id {
				return true
			}
		}
	}
	return false
}

// Clear drops all layers and registrations.
func (l *Layered[T]) Clear() {
	l.layers = l.layers[:0]
	l.stack = l.stack[:0]
}

// Len returns the number of registrations across layers.
func (l *Layered[T]) Len() int {
	n := 0
	for _, layer := range l.layers {
		n += len(layer)
	}
	return n
}

// Depth returns the number of open layers.
func (l *Layered[T]) Depth() int {
	return len(l.stack)
}

// All iterates registrations, newest layer first.
func (l *Layered[T]) All() iter.Seq2[arena.ID, T] {
	return func(yield func(arena.ID, T) bool) {
		for i := len(l.layers) - 1; i >= 0; i-- {
			for _, e := range l.layers[i] {
				if !yield(e.ID, e.Value) {
					return
				}
			}
		}
	}
}

// Layers returns a copy of every layer, oldest first.
func (l *Layered[T]) Layers() [][]Entry[T] {
	out := make([][]Entry[T], len(l.layers))
	for i, layer := range l.layers {
		out[i] = append([]Entry[T](nil), layer...)
	}
	return out
}
