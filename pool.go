package slotpool

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"weak"

	"github.com/hupe1980/slotpool/internal/schedule"
	"github.com/hupe1980/slotpool/internal/slab"
	"github.com/hupe1980/slotpool/resource"
	"golang.org/x/time/rate"
)

const (
	triggerManual    = "manual"
	triggerInterval  = "interval"
	triggerThreshold = "threshold"
)

// Pool hands out reusable handles bound to caller-supplied contexts.
//
// C is the context type bound on checkout, K the field key type and V the
// field value type understood by the Accessor.
//
// A Pool is safe for concurrent use. Pools with an automatic prune strategy
// own a timer and should be closed; a pool that becomes unreachable without
// Close has its timer stopped once it is garbage collected.
type Pool[C any, K comparable, V any] struct {
	mu    sync.Mutex
	acc   Accessor[C, K, V]
	table *slab.Table[C, *Handle[C, K, V]]

	initialSize  int
	growthFactor float64
	strategy     PruneStrategy

	logger    *Logger
	metrics   MetricsCollector
	rc        *resource.Controller
	exhausted rate.Sometimes

	scheduler interface{ Stop() }
	debounce  *schedule.Debounce

	grows  uint64
	prunes uint64
	closed bool
}

// New creates a pool that forwards field access to acc and allocates the
// initial slots up front.
//
// New fails with an *ErrInvalidConfig if the options are inconsistent, or
// with resource.ErrSlotLimitExceeded if a resource controller cannot grant the
// initial slots. No pool is returned on error.
func New[C any, K comparable, V any](acc Accessor[C, K, V], optFns ...Option) (*Pool[C, K, V], error) {
	if acc == nil {
		return nil, ErrNilAccessor
	}

	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}

	p := &Pool[C, K, V]{
		acc:          acc,
		table:        slab.New[C, *Handle[C, K, V]](o.maxSize),
		initialSize:  o.initialSize,
		growthFactor: o.growthFactor,
		strategy:     o.prune,
		logger:       o.logger,
		metrics:      o.metricsCollector,
		rc:           o.resourceController,
		exhausted:    rate.Sometimes{First: 1, Interval: 10 * time.Second},
	}

	if err := p.rc.AcquireSlots(int64(o.initialSize)); err != nil {
		return nil, fmt.Errorf("reserve %d initial slots: %w", o.initialSize, err)
	}
	p.table.Grow(o.initialSize, p.newHandle)

	// Timers hold the pool weakly so an unreachable pool can still be
	// collected; the cleanup then stops its timer.
	wp := weak.Make(p)
	switch s := p.strategy.(type) {
	case OnFixedInterval:
		p.scheduler = schedule.NewInterval(s.Interval, func() {
			if p := wp.Value(); p != nil {
				_, _ = p.autoPrune(triggerInterval, s.GraceThreshold)
			}
		})
	case OnUsageThreshold:
		p.debounce = schedule.NewDebounce(s.GracePeriod, func() {
			if p := wp.Value(); p != nil {
				_, _ = p.autoPrune(triggerThreshold, 0)
			}
		})
		p.scheduler = p.debounce
	}
	if p.scheduler != nil {
		runtime.AddCleanup(p, func(sched interface{ Stop() }) { sched.Stop() }, p.scheduler)
	}

	p.logger.Debug("pool created",
		"initial_size", o.initialSize,
		"max_size", p.table.MaxSize(),
		"growth_factor", o.growthFactor,
		"prune", p.strategy.String(),
	)
	return p, nil
}

func (p *Pool[C, K, V]) newHandle(index int) *Handle[C, K, V] {
	return &Handle[C, K, V]{pool: p, index: index}
}

// Checkout binds ctx to a free slot and returns the slot's handle.
//
// If no slot is free the pool first grows by GrowthFactor of its capacity plus
// one slot. Checkout fails with ErrPoolExhausted if the pool cannot grow.
func (p *Pool[C, K, V]) Checkout(ctx C) (*Handle[C, K, V], error) {
	start := time.Now()

	p.mu.Lock()
	h, err := p.checkoutLocked(ctx)
	p.mu.Unlock()

	p.metrics.RecordCheckout(time.Since(start), err)
	return h, err
}

func (p *Pool[C, K, V]) checkoutLocked(ctx C) (*Handle[C, K, V], error) {
	if p.closed {
		return nil, ErrClosed
	}

	if p.table.Available() <= 0 {
		p.growLocked(slab.GrowthStep(p.table.Capacity(), p.table.Room(), p.growthFactor))
	}

	_, h, err := p.table.Acquire(ctx)
	if err != nil {
		p.exhausted.Do(func() {
			p.logger.LogExhausted(p.table.Capacity(), p.table.MaxSize())
		})
		return nil, ErrPoolExhausted
	}
	return h, nil
}

// growLocked adds up to by slots. When the resource controller cannot grant
// all of them it falls back to a single slot.
func (p *Pool[C, K, V]) growLocked(by int) int {
	requested := by
	by = min(by, p.table.Room())
	if by <= 0 {
		return 0
	}

	if err := p.rc.AcquireSlots(int64(by)); err != nil {
		by = 1
		if err := p.rc.AcquireSlots(1); err != nil {
			return 0
		}
	}

	added := p.table.Grow(by, p.newHandle)
	p.grows++
	p.logger.LogGrow(requested, added, p.table.Capacity())
	p.metrics.RecordGrow(added, p.table.Capacity())
	return added
}

// Release returns h to the pool and clears its context.
//
// It fails with ErrUnownedHandle if h does not belong to this pool and with
// ErrNotCheckedOut if h is already free; neither changes the pool.
func (p *Pool[C, K, V]) Release(h *Handle[C, K, V]) error {
	p.mu.Lock()
	err := p.releaseLocked(h)
	p.mu.Unlock()

	p.metrics.RecordRelease(err)
	return err
}

func (p *Pool[C, K, V]) releaseLocked(h *Handle[C, K, V]) error {
	if p.closed {
		return ErrClosed
	}
	if !p.ownsLocked(h) {
		return ErrUnownedHandle
	}
	if !p.table.Release(h.index) {
		return ErrNotCheckedOut
	}

	if s, ok := p.strategy.(OnUsageThreshold); ok && p.freeRatioLocked() >= s.Threshold {
		p.debounce.Arm()
	}
	return nil
}

// ownsLocked reports whether h is paired with one of p's slots.
func (p *Pool[C, K, V]) ownsLocked(h *Handle[C, K, V]) bool {
	if p.closed || h == nil || h.pool != p {
		return false
	}
	owner, ok := p.table.Handle(h.index)
	return ok && owner == h
}

// With checks out a handle for ctx, calls fn with it and releases it again.
func (p *Pool[C, K, V]) With(ctx C, fn func(h *Handle[C, K, V]) error) (err error) {
	h, err := p.Checkout(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := p.Release(h); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(h)
}

// Prune compacts the pool down to the used slots plus GrowthFactor slack,
// but never below the initial size. Free slots beyond that are discarded and
// their handles become invalid.
//
// Prune is only available under the Manual strategy; otherwise it fails with
// ErrWrongStrategy without changing the pool.
func (p *Pool[C, K, V]) Prune() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if _, ok := p.strategy.(Manual); !ok {
		return fmt.Errorf("%w: prune is automatic under %s", ErrWrongStrategy, p.strategy)
	}
	p.pruneLocked(triggerManual)
	return nil
}

// autoPrune is the entry point for timer-driven compaction. It only runs when
// the free share of the pool is at least grace and the resource controller
// allows it, and reports whether a compaction happened.
func (p *Pool[C, K, V]) autoPrune(trigger string, grace float64) (bool, error) {
	if _, ok := p.strategy.(Manual); ok {
		return false, fmt.Errorf("%w: automatic prune under %s", ErrWrongStrategy, p.strategy)
	}

	if !p.rc.TryAcquireBackground() {
		p.logger.LogPruneSkipped(trigger, "background workers busy")
		return false, nil
	}
	defer p.rc.ReleaseBackground()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false, ErrClosed
	}
	if p.freeRatioLocked() < grace {
		p.logger.LogPruneSkipped(trigger, "below grace threshold")
		return false, nil
	}
	if !p.rc.AllowPrune() {
		p.logger.LogPruneSkipped(trigger, "rate limited")
		return false, nil
	}
	return p.pruneLocked(trigger), nil
}

func (p *Pool[C, K, V]) pruneLocked(trigger string) bool {
	capacity := p.table.Capacity()
	if capacity <= p.initialSize {
		return false
	}

	used := p.table.Used()
	target := slab.CompactTarget(used, p.initialSize, capacity, p.growthFactor)
	if target >= capacity {
		return false
	}

	start := time.Now()
	plan := p.table.Compact(target,
		func(h *Handle[C, K, V], index int) { h.index = index },
		func(h *Handle[C, K, V]) { h.index = -1 },
	)
	dropped := plan.DroppedCount()
	p.rc.ReleaseSlots(int64(dropped))
	p.prunes++

	p.logger.LogPrune(trigger, capacity, p.table.Capacity(), used, dropped)
	p.metrics.RecordPrune(time.Since(start), dropped, p.table.Capacity())
	return true
}

func (p *Pool[C, K, V]) freeRatioLocked() float64 {
	capacity := p.table.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(p.table.Available()) / float64(capacity)
}

// Capacity returns the number of slots.
func (p *Pool[C, K, V]) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table.Capacity()
}

// UsedCapacity returns the number of checked-out slots.
func (p *Pool[C, K, V]) UsedCapacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table.Used()
}

// AvailableCapacity returns the number of free slots.
func (p *Pool[C, K, V]) AvailableCapacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table.Available()
}

// Stats is a snapshot of a pool's state.
type Stats struct {
	Capacity     int
	Used         int
	Available    int
	InitialSize  int
	MaxSize      int
	Grows        uint64
	Prunes       uint64
	Utilization  float64 // Used / Capacity (0.0-1.0)
	Strategy     string
	PrunePending bool // a threshold-triggered prune is waiting for its grace period
	Closed       bool
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[C, K, V]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Capacity:    p.table.Capacity(),
		Used:        p.table.Used(),
		Available:   p.table.Available(),
		InitialSize: p.initialSize,
		MaxSize:     p.table.MaxSize(),
		Grows:       p.grows,
		Prunes:      p.prunes,
		Strategy:    p.strategy.String(),
		Closed:      p.closed,
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	if p.debounce != nil {
		s.PrunePending = p.debounce.Pending()
	}
	return s
}
