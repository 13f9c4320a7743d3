package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task = func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of goroutines. Each task
// gets its own timeout and a panic in one task does not kill its worker.
//
// The task channel is never closed, so a late Submit is refused instead of
// panicking. Workers stop only on Close or Shutdown; cancelling the parent
// context cancels task contexts but queued tasks are still drained.
type WorkerPool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	log     *zap.Logger

	mu       sync.Mutex
	closed   bool
	pending  sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWorkerPool starts size workers fed by a queue holding up to queue
// tasks. size must be positive.
func NewWorkerPool(parent context.Context, size, queue int, timeout time.Duration, log *zap.Logger) *WorkerPool {
	if size <= 0 {
		panic("async: worker pool size must be positive")
	}
	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:   make(chan Task, max(queue, 0)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		log:     log,
		stop:    make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			return
		case task := <-p.tasks:
			p.run(id, task)
		}
	}
}

func (p *WorkerPool) run(id int, task Task) {
	defer p.pending.Done()

	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	task(ctx)
}

// accept registers one more pending task unless the pool is closed.
func (p *WorkerPool) accept() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.pending.Add(1)
	return true
}

// Submit blocks until the task is queued. It reports false when the pool is
// closed or stopped.
func (p *WorkerPool) Submit(task Task) bool {
	if !p.accept() {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.pending.Done()
		return false
	case p.tasks <- task:
		return true
	}
}

// TrySubmit queues the task only if there is room right now.
func (p *WorkerPool) TrySubmit(task Task) bool {
	if !p.accept() {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		p.pending.Done()
		return false
	}
}

// Close refuses new tasks, waits for the accepted ones and stops the workers.
func (p *WorkerPool) Close() {
	p.markClosed()
	p.pending.Wait()
	p.cancel()
	p.stopWorkers()
}

// Shutdown cancels running tasks and waits for workers to exit. Queued
// tasks are dropped.
func (p *WorkerPool) Shutdown() {
	p.markClosed()
	p.cancel()
	p.stopWorkers()
	for {
		select {
		case <-p.tasks:
			p.pending.Done()
		default:
			return
		}
	}
}

func (p *WorkerPool) markClosed() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *WorkerPool) stopWorkers() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
}
