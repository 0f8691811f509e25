package silo

import (
	"sync"

	"go.uber.org/zap"
)

// task is one unit of work submitted to a workerPool.
type task func()

// workerPool is a fixed-size pool of goroutines blocked on a condition
// variable until work arrives, grounded on
// original_source/src/Utilities/ThreadPool.h. Threaded system registration
// (spec.md §4.7) partitions a query's entity set across this pool's workers
// rather than spawning one goroutine per chunk, so chunk count is bounded by
// worker count regardless of how many entities a query matches.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []task
	workers int
	stopped bool
	wg      sync.WaitGroup
}

// newWorkerPool starts workers goroutines, each blocking on the pool's
// queue until Submit wakes one or Stop shuts the pool down.
func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	p := &workerPool{workers: workers}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	Config.logger.Debug("worker pool started", zap.Int("workers", workers))
	return p
}

func (p *workerPool) run() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if len(p.queue) == 0 && p.stopped {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		t()
	}
}

// Submit enqueues t for some worker to run and wakes one blocked worker.
// Submitting to a stopped pool returns WorkerPoolStoppedError instead of
// enqueuing.
func (p *workerPool) Submit(t task) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return WorkerPoolStoppedError{}
	}
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	p.cond.Signal()
	return nil
}

// RunChunked partitions [0, count) into at most p.workers contiguous chunks
// of ceil(count/p.workers) indices each (the last chunk holding whatever
// remains, so it may be shorter) and runs fn(start, end) for each
// chunk on the pool, blocking until every chunk has completed. This is the
// scheduler's primitive for a threaded query system (spec.md §4.7),
// matching original_source's chunkSize = (count+threadCount-1)/threadCount,
// end = min(start+chunkSize, count) partitioning.
func (p *workerPool) RunChunked(count int, fn func(start, end int)) {
	if count == 0 {
		return
	}
	chunkSize := (count + p.workers - 1) / p.workers

	var wg sync.WaitGroup
	for start := 0; start < count; start += chunkSize {
		end := start + chunkSize
		if end > count {
			end = count
		}
		wg.Add(1)
		s, e := start, end
		p.Submit(func() {
			defer wg.Done()
			fn(s, e)
		})
	}
	wg.Wait()
}

// Stop wakes every blocked worker so it can observe p.stopped and return,
// then waits for all of them to exit. Submit after Stop always fails.
func (p *workerPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
	Config.logger.Debug("worker pool stopped", zap.Int("workers", p.workers))
}
