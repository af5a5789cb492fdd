package slab

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// Plan describes how Compact rebuilds a table.
type Plan struct {
	// Order lists the old indices of the surviving slots in their new order.
	// Order[newIndex] == oldIndex.
	Order []int
	// Dropped holds the old indices of the free slots that were discarded.
	Dropped *roaring.Bitmap
	// Used is the number of used slots, which occupy Order[:Used].
	Used int
}

// Capacity returns the capacity of the compacted table.
func (p Plan) Capacity() int { return len(p.Order) }

// DroppedCount returns the number of discarded slots.
func (p Plan) DroppedCount() int { return int(p.Dropped.GetCardinality()) }

// Plan computes the compaction of the table to target slots without changing
// the table. target is raised to the number of used slots if it is lower and
// capped at the current capacity.
func (t *Table[C, H]) Plan(target int) Plan {
	used := t.Used()
	target = max(target, used)
	target = min(target, len(t.slots))

	plan := Plan{
		Order:   make([]int, 0, target),
		Dropped: roaring.New(),
		Used:    used,
	}

	for i := range t.slots {
		if t.slots[i].used {
			plan.Order = append(plan.Order, i)
		}
	}
	for i := range t.slots {
		if t.slots[i].used {
			continue
		}
		if len(plan.Order) < target {
			plan.Order = append(plan.Order, i)
			continue
		}
		plan.Dropped.Add(uint32(i)) //nolint:gosec // index < MaxSlots
	}
	return plan
}

// Compact rebuilds the table to target slots as described by Plan.
//
// moved is called for every surviving slot's handle with its new index, and
// dropped for every discarded slot's handle. Used slots are never dropped.
func (t *Table[C, H]) Compact(target int, moved func(h H, index int), dropped func(h H)) Plan {
	plan := t.Plan(target)

	if dropped != nil {
		it := plan.Dropped.Iterator()
		for it.HasNext() {
			dropped(t.slots[it.Next()].handle)
		}
	}

	next := make([]slot[C, H], len(plan.Order))
	free := bitset.New(uint(len(plan.Order)))
	for newIndex, oldIndex := range plan.Order {
		next[newIndex] = t.slots[oldIndex]
		if !next[newIndex].used {
			free.Set(uint(newIndex))
		}
		if moved != nil {
			moved(next[newIndex].handle, newIndex)
		}
	}

	t.slots = next
	t.free = free
	t.available = len(next) - plan.Used
	return plan
}
