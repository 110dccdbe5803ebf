package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs batches of tasks on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own is empty,
// which keeps bands of uneven cost balanced.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		queues: make([]chan func(), workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
			continue
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i, q := range p.queues {
		if i == id {
			continue
		}
		select {
		case task := <-q:
			return task
		default:
		}
	}
	return nil
}

// Run executes tasks and waits for all of them. Once the pool is closed the
// tasks run on the calling goroutine.
func (p *Pool) Run(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if !p.running.Load() {
		for _, task := range tasks {
			task()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		wrapped := func() {
			defer wg.Done()
			task()
		}
		select {
		case p.queues[i%len(p.queues)] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// Rows splits [0, height) into at most parts bands of at least minRows rows
// and calls fn for each band in parallel. With one band fn runs on the
// calling goroutine.
func (p *Pool) Rows(height, parts, minRows int, fn func(y0, y1 int)) {
	bands := Bands(height, parts, minRows)
	if len(bands) == 1 {
		fn(bands[0][0], bands[0][1])
		return
	}
	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { fn(b[0], b[1]) }
	}
	p.Run(tasks)
}

// Close stops the workers after the queued tasks finish. Close is safe to
// call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return len(p.queues)
}
