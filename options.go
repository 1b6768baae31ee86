package objslot

import "log/slog"

type options struct {
	maxCapacity      int
	initialCapacity  int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Pool at construction.
type Option func(*options)

// WithMaxCapacity limits the number of live elements Create admits.
// 0 (the default) means unbounded. Negative values are treated as 0.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		o.maxCapacity = max(n, 0)
	}
}

// WithInitialCapacity reserves backing storage for n slots up front.
// It has the same effect as calling Reserve(n) on the new pool.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = max(n, 0)
	}
}

// WithMetricsCollector configures a metrics collector for pool events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &objslot.BasicMetricsCollector{}
//	pool := objslot.New[Mesh](objslot.WithMetricsCollector(metrics))
//	// ... use pool ...
//	stats := metrics.GetStats()
//	fmt.Printf("created: %d, removed: %d\n", stats.CreateCount, stats.RemoveCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for pool events.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := objslot.NewJSONLogger(slog.LevelDebug)
//	pool := objslot.New[Mesh](objslot.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
