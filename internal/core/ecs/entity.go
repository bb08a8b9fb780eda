package ecs

import (
	"fmt"
	"sync/atomic"
)

// generation is shared by every Store in the process, so a generation value
// identifies exactly one allocation for the lifetime of the process.
var generation atomic.Uint64

func nextGeneration() uint64 {
	return generation.Add(1)
}

// Handle addresses a slot in a Store. Index is only a lookup accelerator;
// Generation alone tells a live handle from a stale one.
type Handle struct {
	Index      uint32
	Generation uint64
}

// IsZero reports whether h is the zero Handle. Generations start at 1, so the
// zero Handle is never issued and doubles as "no entity".
func (h Handle) IsZero() bool { return h.Generation == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Generation)
}

type slot[T any] struct {
	stamp Handle // zero while the slot is on the free list
	value T
	full  bool
}

// Store is a dense arena of entity slots with a LIFO free list. All access is
// validate-then-dereference: stale handles read as absent.
// Accessed only from the simulation goroutine, no locks.
type Store[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		slots:    make([]slot[T], 0, 1024),
		freeList: make([]uint32, 0, 256),
	}
}

// Allocate reserves a slot under a fresh generation. Nothing is stored yet;
// follow with Set.
func (s *Store[T]) Allocate() Handle {
	var idx uint32
	if n := len(s.freeList); n > 0 {
		idx = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot[T]{})
	}
	h := Handle{Index: idx, Generation: nextGeneration()}
	s.slots[idx].stamp = h
	return h
}

// Deallocate frees the slot reserved under h, whether it currently holds a
// value or its value was taken out for a turn. Stale handles, out-of-range
// indices and already-free slots return false.
func (s *Store[T]) Deallocate(h Handle) bool {
	if h.IsZero() || int(h.Index) >= len(s.slots) {
		return false
	}
	sl := &s.slots[h.Index]
	if sl.stamp != h {
		return false // stale reference
	}
	*sl = slot[T]{}
	s.freeList = append(s.freeList, h.Index)
	return true
}

// Get returns the value stored under h. For pointer element types the result
// is the live value, so it also serves as the mutable lookup.
func (s *Store[T]) Get(h Handle) (T, bool) {
	var zero T
	if int(h.Index) >= len(s.slots) {
		return zero, false
	}
	sl := &s.slots[h.Index]
	if !sl.full || sl.stamp != h {
		return zero, false
	}
	return sl.value, true
}

// Set overwrites the slot at h.Index. The only check is the bounds check: it
// is used for first placement after Allocate and for write-back after Take.
func (s *Store[T]) Set(h Handle, v T) {
	if int(h.Index) >= len(s.slots) {
		return
	}
	s.slots[h.Index] = slot[T]{stamp: h, value: v, full: true}
}

// Take moves the value out of its slot. The slot stays reserved under h, so
// a later Set(h, v) puts it back and Deallocate(h) still releases it.
func (s *Store[T]) Take(h Handle) (T, bool) {
	v, ok := s.Get(h)
	if !ok {
		return v, false
	}
	var zero T
	sl := &s.slots[h.Index]
	sl.value = zero
	sl.full = false
	return v, true
}

// Count returns the number of slots, occupied or not.
func (s *Store[T]) Count() int { return len(s.slots) }

// HandleAt returns the handle of the value stored in slot i, if any.
func (s *Store[T]) HandleAt(i int) (Handle, bool) {
	if i < 0 || i >= len(s.slots) || !s.slots[i].full {
		return Handle{}, false
	}
	return s.slots[i].stamp, true
}

// Live returns the number of slots currently holding a value.
func (s *Store[T]) Live() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].full {
			n++
		}
	}
	return n
}

// Each calls fn for every stored value in ascending slot order.
func (s *Store[T]) Each(fn func(Handle, T)) {
	for i := range s.slots {
		if s.slots[i].full {
			fn(s.slots[i].stamp, s.slots[i].value)
		}
	}
}
