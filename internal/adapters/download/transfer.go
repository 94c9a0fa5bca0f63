package download

import (
	"context"
	"sync"
)

type transfer struct {
	url  string
	dest string
	done chan struct{}

	mu  sync.Mutex
	err error
}

func newTransfer(url, dest string) *transfer {
	return &transfer{url: url, dest: dest, done: make(chan struct{})}
}

func (t *transfer) finish(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

func (t *transfer) URL() string { return t.url }

func (t *transfer) Dest() string { return t.dest }

func (t *transfer) Done() <-chan struct{} { return t.done }

func (t *transfer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks until the transfer ends or ctx is done. It returns the transfer error, or
// ctx.Err() when ctx ends first.
func (t *transfer) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
