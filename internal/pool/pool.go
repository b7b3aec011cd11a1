// Package pool runs index-addressed tasks on a fixed set of workers.
package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Task processes the item at index i. Tasks of one run must only write to
// state owned by their own index.
type Task func(ctx context.Context, i int) error

// PanicError is recorded when a task panics.
type PanicError struct {
	Index int
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %d panicked: %v", e.Index, e.Value)
}

// Pool executes tasks with a fixed worker count
type Pool struct {
	workers int
	logger  *zap.Logger
}

// New creates a pool. A non-positive worker count means one worker per CPU.
func New(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{workers: workers, logger: logger}
}

// Workers returns the worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run dispatches every index in [0, n) and blocks until all tasks have
// finished. Task errors and panics are recorded in flag; they never stop the
// remaining tasks.
func (p *Pool) Run(ctx context.Context, n int, flag *FailureFlag, task Task) {
	if n <= 0 {
		return
	}

	indexes := make(chan int, n)
	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)

	workers := p.workers
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go p.worker(ctx, w, indexes, flag, task, &wg)
	}
	wg.Wait()
}

// worker is a worker goroutine that processes indexes until the channel drains
func (p *Pool) worker(ctx context.Context, id int, indexes <-chan int, flag *FailureFlag, task Task, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range indexes {
		// Execute task with panic recovery
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("task panicked",
						zap.Int("worker", id),
						zap.Int("index", i),
						zap.Any("panic", r),
					)
					flag.Set(&PanicError{Index: i, Value: r})
				}
			}()

			if err := task(ctx, i); err != nil {
				p.logger.Error("task failed",
					zap.Int("worker", id),
					zap.Int("index", i),
					zap.Error(err),
				)
				flag.Set(err)
			}
		}()
	}
}

var errUnspecified = errors.New("unspecified failure")

// FailureFlag is a set-only failure marker shared by concurrent tasks. Once
// set it stays set; the first recorded error is kept.
type FailureFlag struct {
	set  atomic.Bool
	once sync.Once
	err  error
}

// Set marks the run as failed. A nil error is recorded as an unspecified
// failure.
func (f *FailureFlag) Set(err error) {
	if err == nil {
		err = errUnspecified
	}
	f.once.Do(func() {
		f.err = err
	})
	f.set.Store(true)
}

// Failed reports whether the flag has been set.
func (f *FailureFlag) Failed() bool {
	return f.set.Load()
}

// Err returns the first recorded error, or nil when the flag is clear.
func (f *FailureFlag) Err() error {
	if !f.set.Load() {
		return nil
	}
	return f.err
}
