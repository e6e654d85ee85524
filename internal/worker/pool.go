// Package worker provides the bounded task pool shared by the bulk brand
// and car paths. Sizing is fixed at startup; a full backlog rejects the
// submission instead of queueing without bound.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrBusy = errors.New("worker pool backlog full")

type Pool struct {
	backlog chan func()
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func New(workers, queue int) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", workers)
	}
	if queue <= 0 {
		return nil, fmt.Errorf("queue capacity must be positive, got %d", queue)
	}

	p := &Pool{backlog: make(chan func(), queue)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p, nil
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.backlog {
		task()
	}
}

// Submit queues task for execution. It returns ErrBusy when the backlog is
// full and an error when the pool has been closed.
func (p *Pool) Submit(task func()) (*Future, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, errors.New("worker pool closed")
	}

	f := &Future{done: make(chan struct{})}
	wrapped := func() {
		defer close(f.done)
		task()
	}

	select {
	case p.backlog <- wrapped:
		return f, nil
	default:
		return nil, ErrBusy
	}
}

// Close stops accepting work and waits for in-flight tasks to drain.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.backlog)
	p.mu.Unlock()

	p.wg.Wait()
}

// Future resolves once its task has run. The task's results travel through
// the closure the caller submitted; Wait establishes the happens-before
// edge that makes reading them safe.
type Future struct {
	done chan struct{}
}

func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
