// Package slab implements the slot table behind a slotpool.Pool.
//
// A Table is a flat, ordered sequence of slots. Each slot holds a bound
// context, a used/free flag and the handle paired with it at creation time.
// Slots are only ever added by Grow and only ever removed by Compact.
//
// # Layout
//
//	index:   0      1      2      3      4
//	       ┌──────┬──────┬──────┬──────┬──────┐
//	slots  │ used │ free │ used │ free │ free │
//	       └──────┴──────┴──────┴──────┴──────┘
//	free      0      1      0      1      1      (bitset)
//
// Acquire always takes the lowest free index (first-fit). The free set is a
// bitset so that NextSet(0) finds that index without a separate free list.
//
// # Compaction
//
// Compact rebuilds the table at a smaller capacity. Used slots are copied
// first, then free slots fill the remaining positions up to the target. Both
// passes keep the original relative order. Free slots beyond the target are
// dropped and reported in the returned Plan.
//
// # Concurrency
//
// Table is not safe for concurrent use. The owning pool serializes access.
package slab
