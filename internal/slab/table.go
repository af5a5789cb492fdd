package slab

import (
	"errors"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// MaxSlots is the largest capacity a Table supports.
const MaxSlots = math.MaxInt32

// ErrNoFreeSlot is returned by Acquire when every slot is in use.
var ErrNoFreeSlot = errors.New("slab: no free slot")

type slot[C any, H any] struct {
	ctx    C
	used   bool
	handle H
}

// Table is an ordered sequence of slots, each paired with a handle of type H
// and bound to a context of type C while in use.
type Table[C any, H any] struct {
	slots     []slot[C, H]
	free      *bitset.BitSet
	available int
	maxSize   int
}

// New creates an empty table that never grows beyond maxSize slots.
// A maxSize <= 0 or above MaxSlots means MaxSlots.
func New[C any, H any](maxSize int) *Table[C, H] {
	if maxSize <= 0 || maxSize > MaxSlots {
		maxSize = MaxSlots
	}
	return &Table[C, H]{
		free:    bitset.New(0),
		maxSize: maxSize,
	}
}

// Capacity returns the number of slots.
func (t *Table[C, H]) Capacity() int { return len(t.slots) }

// Available returns the number of free slots.
func (t *Table[C, H]) Available() int { return t.available }

// Used returns the number of slots in use.
func (t *Table[C, H]) Used() int { return len(t.slots) - t.available }

// MaxSize returns the capacity limit.
func (t *Table[C, H]) MaxSize() int { return t.maxSize }

// Room returns how many slots can still be added before MaxSize is reached.
func (t *Table[C, H]) Room() int { return t.maxSize - len(t.slots) }

// Grow appends up to by free slots and returns how many were added.
// newHandle is called once for every new slot with the slot's index.
// Grow adds nothing once the table is at MaxSize.
func (t *Table[C, H]) Grow(by int, newHandle func(index int) H) int {
	by = min(by, t.Room())
	if by <= 0 {
		return 0
	}

	t.slots = append(t.slots, make([]slot[C, H], by)...)
	start := len(t.slots) - by
	for i := start; i < len(t.slots); i++ {
		t.slots[i].handle = newHandle(i)
		t.free.Set(uint(i))
	}
	t.available += by
	return by
}

// Acquire binds ctx to the lowest-indexed free slot and returns the slot's
// index and handle. It returns ErrNoFreeSlot when no slot is free.
func (t *Table[C, H]) Acquire(ctx C) (int, H, error) {
	var zero H
	if t.available <= 0 {
		return -1, zero, ErrNoFreeSlot
	}
	i, ok := t.free.NextSet(0)
	if !ok || int(i) >= len(t.slots) {
		return -1, zero, ErrNoFreeSlot
	}

	s := &t.slots[i]
	s.ctx = ctx
	s.used = true
	t.free.Clear(i)
	t.available--
	return int(i), s.handle, nil
}

// Release clears the context of the slot at index and marks it free.
// It reports false, without changing anything, if index is out of range or
// the slot is already free.
func (t *Table[C, H]) Release(index int) bool {
	if index < 0 || index >= len(t.slots) || !t.slots[index].used {
		return false
	}
	var zero C
	s := &t.slots[index]
	s.ctx = zero
	s.used = false
	t.free.Set(uint(index))
	t.available++
	return true
}

// Handle returns the handle paired with the slot at index.
func (t *Table[C, H]) Handle(index int) (H, bool) {
	if index < 0 || index >= len(t.slots) {
		var zero H
		return zero, false
	}
	return t.slots[index].handle, true
}

// Context returns the context bound to the slot at index. The boolean is
// false if the slot is free or index is out of range.
func (t *Table[C, H]) Context(index int) (C, bool) {
	if index < 0 || index >= len(t.slots) || !t.slots[index].used {
		var zero C
		return zero, false
	}
	return t.slots[index].ctx, true
}

// InUse reports whether the slot at index is bound to a context.
func (t *Table[C, H]) InUse(index int) bool {
	return index >= 0 && index < len(t.slots) && t.slots[index].used
}

// FreeCount returns the cardinality of the free set. It always equals
// Available; it exists so callers and tests can check that invariant.
func (t *Table[C, H]) FreeCount() int {
	return int(t.free.Count())
}
