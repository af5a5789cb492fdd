package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// OpKind is the kind of a pool operation in a generated sequence.
type OpKind int

const (
	// OpCheckout checks out a new handle.
	OpCheckout OpKind = iota
	// OpRelease releases one outstanding handle.
	OpRelease
	// OpPrune compacts the pool.
	OpPrune
)

func (k OpKind) String() string {
	switch k {
	case OpCheckout:
		return "checkout"
	case OpRelease:
		return "release"
	case OpPrune:
		return "prune"
	default:
		return "unknown"
	}
}

// Op is one step of a generated pool workload.
type Op struct {
	Kind OpKind
	// Pick selects which outstanding handle a release targets:
	// outstanding[Pick % len(outstanding)].
	Pick int
}

// Ops generates n random pool operations. releaseRatio is the probability of
// a release, pruneRatio the probability of a prune; the rest are checkouts.
func (r *RNG) Ops(n int, releaseRatio, pruneRatio float64) []Op {
	ops := make([]Op, n)
	for i := range ops {
		x := r.Float64()
		switch {
		case x < pruneRatio:
			ops[i] = Op{Kind: OpPrune}
		case x < pruneRatio+releaseRatio:
			ops[i] = Op{Kind: OpRelease, Pick: r.Intn(1 << 20)}
		default:
			ops[i] = Op{Kind: OpCheckout}
		}
	}
	return ops
}

// Fields is a map-backed record usable as a pool context.
type Fields[K comparable, V any] map[K]V

// GetField reads key from f. Suitable as an accessor Get function.
func GetField[K comparable, V any](f Fields[K, V], key K) V {
	return f[key]
}

// SetField writes key in f and reports whether f was non-nil.
// Suitable as an accessor Set function.
func SetField[K comparable, V any](f Fields[K, V], key K, value V) bool {
	if f == nil {
		return false
	}
	f[key] = value
	return true
}
