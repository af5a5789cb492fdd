// Package slotpool provides a reusable-object pool built on a slot arena.
//
// Callers check out a handle bound to a context of their choosing, use it as
// if it were a freshly allocated object, and release it again. Once the pool
// has grown to its steady-state size, checkout and release allocate nothing.
//
// # Quick Start
//
//	type point struct{ X, Y float64 }
//
//	acc := slotpool.AccessorFuncs[*point, string, float64]{
//	    GetFunc: func(p *point, key string) float64 {
//	        if key == "x" {
//	            return p.X
//	        }
//	        return p.Y
//	    },
//	    SetFunc: func(p *point, key string, v float64) bool {
//	        switch key {
//	        case "x":
//	            p.X = v
//	        case "y":
//	            p.Y = v
//	        default:
//	            return false
//	        }
//	        return true
//	    },
//	}
//
//	pool, _ := slotpool.New[*point, string, float64](acc, slotpool.WithInitialSize(64))
//	defer pool.Close()
//
//	h, _ := pool.Checkout(&point{X: 1, Y: 2})
//	h.Set("x", h.Get("x")+1)
//	_ = pool.Release(h)
//
// # Handles
//
// Every slot is paired with exactly one *Handle for its whole life. Checking
// out the same slot again returns the same handle, so identity comparisons
// (==) are meaningful. A handle owns no data: Get and Set forward to the
// Accessor with whatever context is bound to the slot at call time. After
// Release, a handle's slot is empty and the values it reports are undefined.
//
// # Growth
//
// When no slot is free, Checkout grows the pool by
//
//	ceil(capacity * growthFactor) + 1
//
// slots, capped at the maximum size. At the maximum size with every slot in
// use, Checkout fails with ErrPoolExhausted.
//
// # Pruning
//
// Pruning compacts the pool to
//
//	max(initialSize, ceil(used * (1 + growthFactor)))
//
// slots. Checked-out slots always survive and keep their handles. Free slots
// beyond the target are discarded and their handles become invalid. The
// PruneStrategy chooses when this happens:
//
//   - Manual: only when the caller calls Prune.
//   - OnFixedInterval: on every tick, while enough of the pool is free.
//   - OnUsageThreshold: a grace period after a release leaves enough of the
//     pool free; later releases restart the grace period.
//
// Pools with an automatic strategy own a timer. Call Close to stop it; a pool
// dropped without Close stops its timer only after it is garbage collected.
//
// # Concurrency
//
// All pool state is guarded by a single mutex, which timer callbacks share.
// Accessor functions are called without the lock held.
package slotpool
