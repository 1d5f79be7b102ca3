// Package parallel provides a small work-stealing goroutine pool used for
// intra-file fan-out: resampling the mipmap levels of a single image, or
// compressing the block chunks of a single mipmap level, in parallel.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool distributes work items across a fixed number of worker goroutines.
// Each worker pulls primarily from its own queue but steals from others
// when idle, which keeps mipmap-level fan-out balanced even though levels
// shrink geometrically in cost.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int

	queues []chan func()
	done   chan struct{}
	wg     sync.WaitGroup

	running atomic.Bool
}

// New creates a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used. The pool starts immediately.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
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
	mine := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(mine)
			return
		case work := <-mine:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(mine)
				return
			case work := <-mine:
				if work != nil {
					work()
				}
			}
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

func (p *Pool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run distributes work across workers and blocks until all of it has run.
// If the pool has been closed, Run is a no-op.
func (p *Pool) Run(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		queue := i % p.workers
		task := fn
		wrapped := func() {
			defer wg.Done()
			task()
		}
		select {
		case p.queues[queue] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// Close stops accepting new work and waits for queued work to drain. Safe
// to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines in the pool.
func (p *Pool) Workers() int { return p.workers }
