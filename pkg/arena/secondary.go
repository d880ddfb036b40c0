package arena

import "iter"

type secondarySlot[T any] struct {
	value T
	gen   uint32
}

// Secondary maps IDs issued by an Arena to auxiliary values. An entry is only
// visible through the exact handle it was stored with, so a value recorded for
// a freed slot never leaks to the slot's next occupant.
type Secondary[T any] struct {
	slots []secondarySlot[T]
	live  int
}

// Set stores v for id, replacing any entry held for the same slot.
func (m *Secondary[T]) Set(id ID, v T) {
	if id.IsNil() {
		return
	}
	for int(id.index) >= len(m.slots) {
		m.slots = append(m.slots, secondarySlot[T]{})
	}
	s := &m.slots[id.index]
	if s.gen == 0 {
		m.live++
	}
	s.value = v
	s.gen = id.gen
}

func (m *Secondary[T]) lookup(id ID) *secondarySlot[T] {
	if id.IsNil() || int(id.index) >= len(m.slots) {
		return nil
	}
	s := &m.slots[id.index]
	if s.gen == 0 || s.gen != id.gen {
		return nil
	}
	return s
}

// Get returns the entry for id.
func (m *Secondary[T]) Get(id ID) (v T, ok bool) {
	if s := m.lookup(id); s != nil {
		return s.value, true
	}
	return v, false
}

// Ptr returns a pointer to the entry for id, or nil.
func (m *Secondary[T]) Ptr(id ID) *T {
	if s := m.lookup(id); s != nil {
		return &s.value
	}
	return nil
}

// Contains reports whether an entry exists for id.
func (m *Secondary[T]) Contains(id ID) bool {
	return m.lookup(id) != nil
}

// Delete drops the entry for id.
func (m *Secondary[T]) Delete(id ID) {
	s := m.lookup(id)
	if s == nil {
		return
	}
	*s = secondarySlot[T]{}
	m.live--
}

// Clear drops every entry and keeps the backing storage.
func (m *Secondary[T]) Clear() {
	clear(m.slots)
	m.live = 0
}

// Len returns the number of entries.
func (m *Secondary[T]) Len() int {
	return m.live
}

// All iterates entries in slot order.
func (m *Secondary[T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := range m.slots {
			s := &m.slots[i]
			if s.gen == 0 {
				continue
			}
			if !yield(ID{index: uint32(i), gen: s.gen}, &s.value) {
				return
			}
		}
	}
}
