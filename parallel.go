package pxscale

import (
	"sync"

	"github.com/gogpu/pxscale/internal/parallel"
)

// minBandRows is the smallest row band handed to a worker.
const minBandRows = 16

var (
	rowPoolOnce sync.Once
	rowPool     *parallel.Pool
)

// sharedPool returns the process-wide worker pool, started on first use
// with GOMAXPROCS workers.
func sharedPool() *parallel.Pool {
	rowPoolOnce.Do(func() { rowPool = parallel.NewPool(0) })
	return rowPool
}

// forRows calls fn over [0, height), split into up to o.workers row bands
// that run concurrently. With one worker fn runs once on the caller.
func forRows(o options, height int, fn func(y0, y1 int)) {
	if o.workers <= 1 || height < 2*minBandRows {
		fn(0, height)
		return
	}
	sharedPool().Rows(height, o.workers, minBandRows, fn)
}
