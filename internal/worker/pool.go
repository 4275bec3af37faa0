// Package worker runs independent move attempts on a fixed pool of
// goroutines.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/engine"
	"github.com/lgbarn/movetx/internal/move"
)

// Attempt asks for the piece with ActorID to move to Destination on the
// board in Env.
type Attempt struct {
	Env         *move.Env
	ActorID     string
	Destination chess.Coordinate
}

// WorkItem is an attempt queued for processing.
type WorkItem struct {
	Index   int // Position in the submitted batch
	Attempt Attempt
}

// ProcessResult is the outcome of one work item.
type ProcessResult struct {
	Index   int
	Attempt Attempt
	Result  engine.Result
}

// ProcessFunc handles one work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool feeds work items to a fixed number of worker goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	work        chan WorkItem
	results     chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below one are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the capacity of the work and result channels.
// Values below one are ignored.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool that runs processFunc. It defaults to one worker
// and a buffer of ten items.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for item := range p.work {
		if p.Stopped() {
			continue
		}
		p.results <- p.processFunc(item)
	}
}

// Submit queues item, blocking while the work buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// TrySubmit queues item without blocking. It returns false when the buffer
// is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.Stopped() {
		return false
	}
	select {
	case p.work <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers discard queued items instead of processing them.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Close stops accepting work, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel of processed items.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
