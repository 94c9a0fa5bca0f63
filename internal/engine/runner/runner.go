// Package runner provides the executors that sync passes are submitted to.
package runner

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

var (
	_ ports.Runner = (*Background)(nil)
	_ ports.Runner = (*Inline)(nil)
)

// Background runs each task on its own goroutine, at most concurrency at a time.
type Background struct {
	ctx context.Context
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// NewBackground creates a Background runner whose tasks receive ctx.
// A non-positive concurrency runs one task at a time.
func NewBackground(ctx context.Context, concurrency int) *Background {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Background{
		ctx: ctx,
		sem: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Submit queues task and returns immediately.
func (b *Background) Submit(name string, task ports.Task) {
	b.wg.Go(func() {
		if err := b.sem.Acquire(b.ctx, 1); err != nil {
			b.fail(name, err)
			return
		}
		defer b.sem.Release(1)

		if err := task(b.ctx); err != nil {
			b.fail(name, err)
		}
	})
}

// Wait blocks until every submitted task has finished. It returns the joined task errors
// collected since the previous Wait.
func (b *Background) Wait() error {
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	err := errors.Join(b.errs...)
	b.errs = nil
	return err
}

func (b *Background) fail(name string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs = append(b.errs, taskError(name, err))
}

// Inline runs each task on the caller's goroutine as it is submitted.
type Inline struct {
	ctx  context.Context
	errs []error
}

// NewInline creates an Inline runner whose tasks receive ctx.
func NewInline(ctx context.Context) *Inline {
	return &Inline{ctx: ctx}
}

// Submit runs task before returning.
func (r *Inline) Submit(name string, task ports.Task) {
	if err := task(r.ctx); err != nil {
		r.errs = append(r.errs, taskError(name, err))
	}
}

// Wait returns the joined task errors collected since the previous Wait.
func (r *Inline) Wait() error {
	err := errors.Join(r.errs...)
	r.errs = nil
	return err
}

// taskError tags err with the task name and keeps err in the chain for errors.Is.
func taskError(name string, err error) error {
	return zerr.With(zerr.Wrap(err, "task failed"), "task", name)
}
