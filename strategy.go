package slotpool

import (
	"fmt"
	"math"
	"time"
)

// PruneStrategy decides when a pool compacts itself.
//
// It is one of Manual, OnFixedInterval or OnUsageThreshold, and is fixed for
// the lifetime of the pool.
type PruneStrategy interface {
	fmt.Stringer
	validate() error
	isPruneStrategy()
}

// Manual never compacts on its own. Call Pool.Prune to compact.
type Manual struct{}

// OnFixedInterval compacts every Interval.
//
// A tick only compacts while at least GraceThreshold of the pool
// (available / capacity) is free. A GraceThreshold of 0 compacts on every tick.
type OnFixedInterval struct {
	Interval       time.Duration
	GraceThreshold float64
}

// OnUsageThreshold compacts GracePeriod after a release leaves at least
// Threshold of the pool (available / capacity) free. Every qualifying release
// restarts the grace period, so a burst of releases compacts once.
type OnUsageThreshold struct {
	Threshold   float64
	GracePeriod time.Duration
}

func (Manual) isPruneStrategy()           {}
func (OnFixedInterval) isPruneStrategy()  {}
func (OnUsageThreshold) isPruneStrategy() {}

func (Manual) String() string { return "manual" }

func (s OnFixedInterval) String() string {
	return fmt.Sprintf("interval(%s, grace=%.2f)", s.Interval, s.GraceThreshold)
}

func (s OnUsageThreshold) String() string {
	return fmt.Sprintf("threshold(%.2f, grace=%s)", s.Threshold, s.GracePeriod)
}

func (Manual) validate() error { return nil }

func (s OnFixedInterval) validate() error {
	if s.Interval <= 0 {
		return invalid("OnFixedInterval.Interval", s.Interval, "must be positive")
	}
	if !validFraction(s.GraceThreshold) {
		return invalid("OnFixedInterval.GraceThreshold", s.GraceThreshold, "must be a non-negative number")
	}
	return nil
}

func (s OnUsageThreshold) validate() error {
	if !validFraction(s.Threshold) {
		return invalid("OnUsageThreshold.Threshold", s.Threshold, "must be a non-negative number")
	}
	if s.GracePeriod < 0 {
		return invalid("OnUsageThreshold.GracePeriod", s.GracePeriod, "must not be negative")
	}
	return nil
}

func validFraction(f float64) bool {
	return !math.IsNaN(f) && f >= 0
}
