package pxscale

import (
	"log/slog"
	"runtime"
)

// Defaults for the fractional resampler.
const (
	// DefaultIntermediateMultiplier is K: the intermediate nearest-neighbor
	// image is K times the target size on each axis.
	DefaultIntermediateMultiplier = 6

	// DefaultMemoryBudget caps the bytes a single call may allocate for its
	// output plus the fractional intermediate.
	DefaultMemoryBudget int64 = 256 << 20

	minMultiplier = 2
	maxMultiplier = 16
)

// Option configures a single Scale or Execute call.
//
// Example:
//
//	out, err := pxscale.Scale(src, req,
//	    pxscale.WithIntermediateMultiplier(8),
//	    pxscale.WithMemoryBudget(64<<20))
type Option func(*options)

type options struct {
	multiplier int
	budget     int64
	workers    int
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		multiplier: DefaultIntermediateMultiplier,
		budget:     DefaultMemoryBudget,
		workers:    1,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithIntermediateMultiplier sets K for the fractional resampler. Values are
// clamped to [2, 16]. Larger K makes seams finer and costs K*K more memory.
func WithIntermediateMultiplier(k int) Option {
	return func(o *options) {
		o.multiplier = min(max(k, minMultiplier), maxMultiplier)
	}
}

// WithMemoryBudget sets the per-call allocation budget in bytes. When the
// fractional intermediate does not fit, the call falls back to
// nearest-neighbor; when the output itself does not fit, it fails with
// ErrOutOfMemory. Non-positive values restore the default.
func WithMemoryBudget(bytes int64) Option {
	return func(o *options) {
		if bytes <= 0 {
			bytes = DefaultMemoryBudget
		}
		o.budget = bytes
	}
}

// WithWorkers splits the software resample into up to n row bands that run
// concurrently on a shared worker pool. The output does not depend on n.
// The default of 1 keeps the call on the calling goroutine; n <= 0 means
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
