package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrSlotLimitExceeded is returned when a slot reservation would exceed the
// controller's slot limit.
var ErrSlotLimitExceeded = errors.New("slot limit exceeded")

// Config holds resource limits shared by every pool using a Controller.
type Config struct {
	// SlotLimit is the hard limit on slots held by all pools together.
	// If 0, no hard limit is enforced (only tracking).
	SlotLimit int64

	// MaxBackgroundWorkers is the maximum number of automatic prunes running
	// at the same time. If 0, defaults to 1.
	MaxBackgroundWorkers int64

	// PrunesPerSec limits how often automatic prunes may run.
	// If 0, unlimited.
	PrunesPerSec float64

	// PruneBurst is the number of automatic prunes allowed back to back
	// before PrunesPerSec applies. If 0, defaults to 1.
	PruneBurst int
}

// Controller governs resources shared between pools.
type Controller struct {
	cfg Config

	// Slots
	slotSem  *semaphore.Weighted // nil if unlimited
	slotUsed atomic.Int64

	// Concurrency
	bgSem *semaphore.Weighted

	// Prune rate
	pruneLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}
	if cfg.PruneBurst <= 0 {
		cfg.PruneBurst = 1
	}

	c := &Controller{
		cfg:   cfg,
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}

	if cfg.SlotLimit > 0 {
		c.slotSem = semaphore.NewWeighted(cfg.SlotLimit)
	}

	if cfg.PrunesPerSec > 0 {
		c.pruneLimiter = rate.NewLimiter(rate.Limit(cfg.PrunesPerSec), cfg.PruneBurst)
	}

	return c
}

// AcquireSlots attempts to reserve n slots.
// Returns ErrSlotLimitExceeded if the limit would be exceeded.
// Non-blocking - callers decide how to degrade.
func (c *Controller) AcquireSlots(n int64) error {
	if c == nil {
		return nil
	}
	if n <= 0 {
		return nil
	}

	if c.slotSem != nil {
		if !c.slotSem.TryAcquire(n) {
			return ErrSlotLimitExceeded
		}
	}

	c.slotUsed.Add(n)
	return nil
}

// ReleaseSlots returns n reserved slots.
func (c *Controller) ReleaseSlots(n int64) {
	if c == nil {
		return
	}
	if n <= 0 {
		return
	}

	if c.slotSem != nil {
		c.slotSem.Release(n)
	}
	c.slotUsed.Add(-n)
}

// SlotsInUse returns the number of slots currently reserved.
func (c *Controller) SlotsInUse() int64 {
	if c == nil {
		return 0
	}
	return c.slotUsed.Load()
}

// SlotLimit returns the configured slot limit (0 if unlimited).
func (c *Controller) SlotLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.SlotLimit
}

// AcquireBackground reserves a background worker slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.bgSem.Acquire(ctx, 1)
}

// TryAcquireBackground attempts to reserve a background worker slot without blocking.
func (c *Controller) TryAcquireBackground() bool {
	if c == nil {
		return true
	}
	return c.bgSem.TryAcquire(1)
}

// ReleaseBackground releases a background worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// AllowPrune reports whether an automatic prune may run now, consuming one
// token from the prune rate limiter if so.
func (c *Controller) AllowPrune() bool {
	if c == nil || c.pruneLimiter == nil {
		return true
	}
	return c.pruneLimiter.AllowN(time.Now(), 1)
}
