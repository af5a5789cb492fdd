// Package resource implements a Controller that governs resources shared by
// several pools.
//
// The Controller manages three things:
//
//   - Slots: a global budget of slots across every pool (non-blocking, fail-fast)
//   - Concurrency: how many automatic prunes may run at once
//   - Prune rate: a token bucket bounding how often automatic prunes run
//
// # Slot Budget
//
// A pool reserves slots before it grows and returns them when compaction
// discards slots or the pool is closed:
//
//	rc := resource.NewController(resource.Config{
//	    SlotLimit: 100_000,
//	})
//
//	p1, _ := slotpool.New(acc, slotpool.WithResourceController(rc))
//	p2, _ := slotpool.New(acc, slotpool.WithResourceController(rc))
//
// AcquireSlots never blocks. It returns ErrSlotLimitExceeded immediately and
// the pool decides how to degrade.
//
// # Background Prunes
//
// Timer-driven prunes take a background worker slot with TryAcquireBackground
// and consult AllowPrune. A prune that cannot get either is skipped, not
// queued; the next tick or threshold crossing tries again.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops that
// always grant. This allows optional governance without nil checks everywhere.
package resource
