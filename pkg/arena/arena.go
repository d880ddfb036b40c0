// Package arena provides generational-handle storage.
//
// An [ID] pairs a slot index with the generation that slot had when the value
// was inserted. Removing a value bumps the slot's generation, so handles that
// outlive their value are detected instead of aliasing whatever reuses the
// slot.
package arena

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// ID is a generational handle. The zero value never refers to a live slot.
type ID struct {
	index uint32
	gen   uint32
}

// Nil is the zero handle.
var Nil ID

// IsNil reports whether id is the zero handle.
func (id ID) IsNil() bool {
	return id.gen == 0
}

// Index returns the slot index.
func (id ID) Index() int {
	return int(id.index)
}

// Generation returns the slot generation the handle was issued for.
func (id ID) Generation() int {
	return int(id.gen)
}

func (id ID) String() string {
	if id.IsNil() {
		return "nil"
	}
	return strconv.FormatUint(uint64(id.index), 10) + "v" + strconv.FormatUint(uint64(id.gen), 10)
}

// MarshalText encodes the handle as "<index>v<gen>".
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (id *ID) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "nil" {
		*id = Nil
		return nil
	}
	idx, gen, ok := strings.Cut(s, "v")
	if !ok {
		return fmt.Errorf("arena: malformed id %q", s)
	}
	i, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return fmt.Errorf("arena: malformed id %q: %w", s, err)
	}
	g, err := strconv.ParseUint(gen, 10, 32)
	if err != nil {
		return fmt.Errorf("arena: malformed id %q: %w", s, err)
	}
	*id = ID{index: uint32(i), gen: uint32(g)}
	return nil
}

type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// Arena stores values addressed by generational IDs. Freed slots are reused.
// The zero value is ready to use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) ID {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.occupied = true
		return ID{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, occupied: true})
	return ID{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *Arena[T]) lookup(id ID) *slot[T] {
	if id.IsNil() || int(id.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.index]
	if !s.occupied || s.gen != id.gen {
		return nil
	}
	return s
}

// Get returns the value for id. ok is false for stale or nil handles.
func (a *Arena[T]) Get(id ID) (v T, ok bool) {
	if s := a.lookup(id); s != nil {
		return s.value, true
	}
	return v, false
}

// Ptr returns a pointer to the stored value, or nil for stale handles. The
// pointer is invalidated by the next Insert.
func (a *Arena[T]) Ptr(id ID) *T {
	if s := a.lookup(id); s != nil {
		return &s.value
	}
	return nil
}

// Contains reports whether id refers to a live value.
func (a *Arena[T]) Contains(id ID) bool {
	return a.lookup(id) != nil
}

// Remove frees the slot for id and returns the value it held.
func (a *Arena[T]) Remove(id ID) (v T, ok bool) {
	s := a.lookup(id)
	if s == nil {
		return v, false
	}
	v = s.value
	var zero T
	s.value = zero
	s.occupied = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, id.index)
	a.live--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// All iterates live values in slot order.
func (a *Arena[T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(ID{index: uint32(i), gen: s.gen}, &s.value) {
				return
			}
		}
	}
}
