package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned when submitting to a pool that has been stopped.
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func()

// Pool bounds how many tasks run at once.
type Pool interface {
	// SubmitContext blocks until a worker accepts t, ctx ends, or the pool stops.
	SubmitContext(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task), done: make(chan struct{})}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	jobs chan Task
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			if job != nil {
				job()
			}
		case <-p.done:
			return
		}
	}
}

func (p *pool) SubmitContext(ctx context.Context, t Task) error {
	select {
	case <-p.done:
		return ErrStopped
	default:
	}
	select {
	case p.jobs <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrStopped
	}
}

// Stop lets accepted tasks finish and refuses new ones. Safe to call twice.
func (p *pool) Stop() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

// Run executes fn on p and returns its result. If ctx ends first the caller
// gets ctx.Err(); a task already running finishes in the background.
func Run[T any](ctx context.Context, p Pool, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	out := make(chan result, 1)
	var zero T
	if err := p.SubmitContext(ctx, func() {
		v, err := fn()
		out <- result{v, err}
	}); err != nil {
		return zero, err
	}
	select {
	case r := <-out:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
