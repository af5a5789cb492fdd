package slotpool

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pool metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Calls happen on the hot path; implementations should be cheap and must not
// call back into the pool.
type MetricsCollector interface {
	// RecordCheckout is called after each checkout.
	// err is nil if a handle was returned.
	RecordCheckout(duration time.Duration, err error)

	// RecordRelease is called after each release.
	RecordRelease(err error)

	// RecordGrow is called whenever the slot table grows.
	RecordGrow(added, capacity int)

	// RecordPrune is called after each compaction.
	// dropped is the number of free slots discarded.
	RecordPrune(duration time.Duration, dropped, capacity int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCheckout(time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(error)                 {}
func (NoopMetricsCollector) RecordGrow(int, int)                 {}
func (NoopMetricsCollector) RecordPrune(time.Duration, int, int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CheckoutCount      atomic.Int64
	CheckoutErrors     atomic.Int64
	CheckoutTotalNanos atomic.Int64
	ReleaseCount       atomic.Int64
	ReleaseErrors      atomic.Int64
	GrowCount          atomic.Int64
	SlotsAdded         atomic.Int64
	PruneCount         atomic.Int64
	SlotsDropped       atomic.Int64
	PruneTotalNanos    atomic.Int64
	Capacity           atomic.Int64
}

// RecordCheckout implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckout(duration time.Duration, err error) {
	b.CheckoutCount.Add(1)
	b.CheckoutTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CheckoutErrors.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(err error) {
	b.ReleaseCount.Add(1)
	if err != nil {
		b.ReleaseErrors.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(added, capacity int) {
	b.GrowCount.Add(1)
	b.SlotsAdded.Add(int64(added))
	b.Capacity.Store(int64(capacity))
}

// RecordPrune implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrune(duration time.Duration, dropped, capacity int) {
	b.PruneCount.Add(1)
	b.SlotsDropped.Add(int64(dropped))
	b.PruneTotalNanos.Add(duration.Nanoseconds())
	b.Capacity.Store(int64(capacity))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CheckoutCount:    b.CheckoutCount.Load(),
		CheckoutErrors:   b.CheckoutErrors.Load(),
		CheckoutAvgNanos: b.getAvgCheckoutNanos(),
		ReleaseCount:     b.ReleaseCount.Load(),
		ReleaseErrors:    b.ReleaseErrors.Load(),
		GrowCount:        b.GrowCount.Load(),
		SlotsAdded:       b.SlotsAdded.Load(),
		PruneCount:       b.PruneCount.Load(),
		SlotsDropped:     b.SlotsDropped.Load(),
		Capacity:         b.Capacity.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCheckoutNanos() int64 {
	count := b.CheckoutCount.Load()
	if count == 0 {
		return 0
	}
	return b.CheckoutTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CheckoutCount    int64
	CheckoutErrors   int64
	CheckoutAvgNanos int64
	ReleaseCount     int64
	ReleaseErrors    int64
	GrowCount        int64
	SlotsAdded       int64
	PruneCount       int64
	SlotsDropped     int64
	Capacity         int64
}
