// Package workerpool bounds how many store round-trips the catalog issues
// at once when it resolves or cascades over a garment's product list.
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	products := make([]models.Product, len(ids))
//	err := pool.Each(len(ids), func(i int) error {
//	    p, err := repo.GetByObjectID(ctx, ids[i])
//	    products[i] = p
//	    return err
//	})
//
// A nil *Pool is valid and runs every task inline.
package workerpool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
	size   int
}

// New creates a Pool with the given number of workers (minimum 1).
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		// Buffer equal to 2× the worker count so bursts can be absorbed.
		tasks: make(chan func(), size*2),
		size:  size,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// SubmitWait enqueues task, blocking until a queue slot is free.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Each runs fn(i) for every i in [0, n) and waits for all of them. It
// returns the error of the lowest failing index. A panicking fn is reported
// as an error. Tasks must not call Each on the same pool.
func (p *Pool) Each(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if p == nil {
		for i := 0; i < n; i++ {
			if err := guarded(fn, i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		err := p.SubmitWait(func() {
			defer wg.Done()
			errs[i] = guarded(fn, i)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops accepting new tasks, waits for queued and in-flight tasks
// to finish, and releases the workers. It is safe to call multiple times.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// worker drains the task channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun executes task, recovering from panics so a bad task doesn't kill
// the worker goroutine.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}

func guarded(fn func(i int) error, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workerpool: task %d panicked: %v", i, r)
		}
	}()
	return fn(i)
}
