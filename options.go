package slotpool

import (
	"log/slog"
	"math"

	"github.com/hupe1980/slotpool/internal/slab"
	"github.com/hupe1980/slotpool/resource"
)

const (
	// DefaultInitialSize is the number of slots a pool starts with.
	DefaultInitialSize = 1000
	// DefaultGrowthFactor is the share of capacity added when a pool grows.
	DefaultGrowthFactor = 0.2
)

type options struct {
	initialSize        int
	maxSize            int
	growthFactor       float64
	prune              PruneStrategy
	logger             *Logger
	metricsCollector   MetricsCollector
	resourceController *resource.Controller
}

// Option configures a Pool.
type Option func(*options)

// WithInitialSize sets the number of slots allocated by New. It is also the
// floor that compaction never shrinks below. Defaults to DefaultInitialSize.
func WithInitialSize(n int) Option {
	return func(o *options) {
		o.initialSize = n
	}
}

// WithMaxSize caps the number of slots. It must be greater than the initial
// size and at most math.MaxInt32. 0 means unbounded (math.MaxInt32 slots),
// which is the default.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = n
	}
}

// WithGrowthFactor sets the share of the current capacity added when the pool
// runs out of free slots, and the slack kept above the used slots when it
// compacts. Defaults to DefaultGrowthFactor.
func WithGrowthFactor(f float64) Option {
	return func(o *options) {
		o.growthFactor = f
	}
}

// WithPruneStrategy selects when the pool compacts itself.
// If nil is passed, Manual is used.
//
// Example:
//
//	p, _ := slotpool.New(acc,
//	    slotpool.WithPruneStrategy(slotpool.OnUsageThreshold{
//	        Threshold:   0.75,
//	        GracePeriod: 5 * time.Second,
//	    }),
//	)
//	defer p.Close()
func WithPruneStrategy(s PruneStrategy) Option {
	return func(o *options) {
		o.prune = s
	}
}

// WithLogger configures structured logging for pool events.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for pool operations.
// Pass nil to disable metrics collection.
//
//	metrics := &slotpool.BasicMetricsCollector{}
//	p, _ := slotpool.New(acc, slotpool.WithMetricsCollector(metrics))
//	// ... use p ...
//	stats := metrics.GetStats()
//	fmt.Printf("Checkouts: %d, grows: %d\n", stats.CheckoutCount, stats.GrowCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithResourceController shares a slot budget and background prune limits
// with other pools using the same controller.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceController = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		initialSize:  DefaultInitialSize,
		growthFactor: DefaultGrowthFactor,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	switch s := o.prune.(type) {
	case nil:
		o.prune = Manual{}
	case *Manual:
		o.prune = Manual{}
	case *OnFixedInterval:
		if s != nil {
			o.prune = *s
		}
	case *OnUsageThreshold:
		if s != nil {
			o.prune = *s
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}

func (o *options) validate() error {
	if o.initialSize <= 0 {
		return invalid("InitialSize", o.initialSize, "must be positive")
	}
	if o.initialSize >= slab.MaxSlots {
		return invalid("InitialSize", o.initialSize, "exceeds the slot limit")
	}
	if o.maxSize < 0 {
		return invalid("MaxSize", o.maxSize, "must not be negative")
	}
	if o.maxSize > slab.MaxSlots {
		return invalid("MaxSize", o.maxSize, "exceeds the slot limit")
	}
	if o.maxSize != 0 && o.maxSize <= o.initialSize {
		return invalid("MaxSize", o.maxSize, "must be greater than InitialSize")
	}
	if math.IsNaN(o.growthFactor) || math.IsInf(o.growthFactor, 0) || o.growthFactor < 0 {
		return invalid("GrowthFactor", o.growthFactor, "must be a non-negative number")
	}
	if s, ok := o.prune.(*OnFixedInterval); ok && s == nil {
		return invalid("PruneStrategy", o.prune, "must not be a nil pointer")
	}
	if s, ok := o.prune.(*OnUsageThreshold); ok && s == nil {
		return invalid("PruneStrategy", o.prune, "must not be a nil pointer")
	}
	return o.prune.validate()
}
