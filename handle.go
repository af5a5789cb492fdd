package slotpool

// Accessor reads and writes fields of the value a context describes.
//
// A Pool never looks inside a context. Handle.Get and Handle.Set forward to
// the Accessor together with whatever context is bound to the handle's slot at
// call time.
type Accessor[C any, K comparable, V any] interface {
	Get(ctx C, key K) V
	Set(ctx C, key K, value V) bool
}

// AccessorFuncs adapts a pair of functions to the Accessor interface.
type AccessorFuncs[C any, K comparable, V any] struct {
	GetFunc func(ctx C, key K) V
	SetFunc func(ctx C, key K, value V) bool
}

// Get implements Accessor.
func (f AccessorFuncs[C, K, V]) Get(ctx C, key K) V {
	if f.GetFunc == nil {
		var zero V
		return zero
	}
	return f.GetFunc(ctx, key)
}

// Set implements Accessor.
func (f AccessorFuncs[C, K, V]) Set(ctx C, key K, value V) bool {
	if f.SetFunc == nil {
		return false
	}
	return f.SetFunc(ctx, key, value)
}

// Handle is the stable, reusable object returned by Pool.Checkout.
//
// Every slot has exactly one Handle, created with the slot. Checking out the
// same slot again returns the same *Handle, so handles can be compared with ==.
// A Handle owns no data: Get and Set act on the context bound to its slot at
// the time of the call.
//
// After Release the handle's slot is empty; Get returns the zero value and Set
// returns false. A released handle whose slot is later discarded by
// compaction becomes invalid for good.
type Handle[C any, K comparable, V any] struct {
	pool  *Pool[C, K, V]
	index int // -1 once the slot is discarded
}

// Get returns the field key of the value bound to h.
func (h *Handle[C, K, V]) Get(key K) V {
	ctx, ok := h.Context()
	if !ok {
		var zero V
		return zero
	}
	return h.pool.acc.Get(ctx, key)
}

// Set writes the field key of the value bound to h and reports whether the
// accessor accepted it.
func (h *Handle[C, K, V]) Set(key K, value V) bool {
	ctx, ok := h.Context()
	if !ok {
		return false
	}
	return h.pool.acc.Set(ctx, key, value)
}

// Context returns the context bound to h. The boolean is false if h is not
// checked out.
func (h *Handle[C, K, V]) Context() (C, bool) {
	if h == nil || h.pool == nil {
		var zero C
		return zero, false
	}
	p := h.pool
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ownsLocked(h) {
		var zero C
		return zero, false
	}
	return p.table.Context(h.index)
}

// Valid reports whether h still belongs to an open pool. A valid handle may
// be either checked out or free.
func (h *Handle[C, K, V]) Valid() bool {
	if h == nil || h.pool == nil {
		return false
	}
	h.pool.mu.Lock()
	defer h.pool.mu.Unlock()
	return h.pool.ownsLocked(h)
}

// Index returns the position of h's slot, or -1 if h is no longer valid.
// The position changes when the pool compacts.
func (h *Handle[C, K, V]) Index() int {
	if h == nil || h.pool == nil {
		return -1
	}
	h.pool.mu.Lock()
	defer h.pool.mu.Unlock()
	if !h.pool.ownsLocked(h) {
		return -1
	}
	return h.index
}
