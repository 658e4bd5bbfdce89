package database

import (
	"context"
	"sync"
)

// Lazy owns a connection handle that is opened on first use and reused for
// the life of the process. Concurrent first callers wait on the same open
// instead of racing to create duplicates. A failed open is not remembered,
// so the next Get tries again.
type Lazy[T any] struct {
	mu    sync.Mutex
	open  func(ctx context.Context) (T, error)
	close func(T) error
	value T
	ready bool
}

// NewLazy creates a handle that calls open on first Get and close on Close
func NewLazy[T any](open func(ctx context.Context) (T, error), close func(T) error) *Lazy[T] {
	return &Lazy[T]{open: open, close: close}
}

// Get returns the open handle, opening it if needed
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready {
		return l.value, nil
	}

	value, err := l.open(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	l.value = value
	l.ready = true
	return value, nil
}

// IsOpen reports whether a handle has been opened
func (l *Lazy[T]) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Close tears down the handle if it was ever opened
func (l *Lazy[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.ready {
		return nil
	}

	var zero T
	value := l.value
	l.value = zero
	l.ready = false

	if l.close == nil {
		return nil
	}
	return l.close(value)
}
