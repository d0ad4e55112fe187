package arena

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// Index addresses a record within an Arena. It pairs a slot position with
// the generation the slot had when the record was inserted. An Index stays
// comparable and copyable; it turns stale as soon as its record is removed
// from the arena, after which lookups with it will fail.
//
// The zero Index is the null index; it never resolves.
type Index struct {
	slot       uint32
	generation uint32 // 0 = null; live slots start at generation 1
}

// IsNull returns true for the zero Index, which addresses nothing.
func (ix Index) IsNull() bool {
	return ix.generation == 0
}

func (ix Index) String() string {
	if ix.IsNull() {
		return "Index(null)"
	}
	return fmt.Sprintf("Index(%d.g%d)", ix.slot, ix.generation)
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Arena is a generational arena holding records of type T.
// The zero value is an empty arena, ready for use.
//
// An Arena is not safe for concurrent mutation.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32 // positions of vacated slots, reused LIFO
	count int
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Len returns the number of records currently stored.
func (a *Arena[T]) Len() int {
	return a.count
}

// Cap returns the number of slots the arena has allocated, occupied or not.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// Insert stores a record and returns the Index that addresses it.
// Vacated slots are reused before the arena grows.
func (a *Arena[T]) Insert(value T) Index {
	var pos uint32
	if n := len(a.free); n > 0 {
		pos = a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[pos]
		s.occupied = true
		s.value = value
	} else {
		pos = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{generation: 1, occupied: true, value: value})
	}
	a.count++
	ix := Index{slot: pos, generation: a.slots[pos].generation}
	tracer().Debugf("arena inserts record at %v, len=%d", ix, a.count)
	return ix
}

// Remove deletes the record addressed by ix and returns it.
// Removing a null or stale Index is a no-op and returns false.
func (a *Arena[T]) Remove(ix Index) (T, bool) {
	s, ok := a.resolve(ix)
	if !ok {
		var none T
		return none, false
	}
	value := s.value
	var none T
	s.value = none // release the record for GC
	s.occupied = false
	s.generation++ // outstanding indices for this slot are stale now
	a.free = append(a.free, ix.slot)
	a.count--
	tracer().Debugf("arena removes record at %v, len=%d", ix, a.count)
	return value, true
}

// Get resolves ix to the record it addresses. It returns false if ix is
// null, stale, or otherwise does not address a live record.
//
// The returned pointer is valid until the next Insert on this arena.
func (a *Arena[T]) Get(ix Index) (*T, bool) {
	s, ok := a.resolve(ix)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// Get2 resolves two indices at once, so that a caller may mutate two
// records simultaneously. Each result is nil if its index does not
// resolve. The two indices must address distinct slots: calling Get2 with
// twice the same slot would alias one record through two pointers, which
// is a defect in the caller's bookkeeping, and panics.
func (a *Arena[T]) Get2(x, y Index) (*T, *T) {
	assertThat(x.IsNull() || y.IsNull() || x.slot != y.slot,
		"Get2 called with twice the same slot %v", x)
	px, _ := a.Get(x)
	py, _ := a.Get(y)
	return px, py
}

func (a *Arena[T]) resolve(ix Index) (*slot[T], bool) {
	if ix.IsNull() || ix.slot >= uint32(len(a.slots)) {
		return nil, false
	}
	s := &a.slots[ix.slot]
	if !s.occupied || s.generation != ix.generation {
		return nil, false // removed or reused in the meantime
	}
	return s, true
}
