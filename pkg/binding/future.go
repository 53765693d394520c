package binding

import (
	"context"
	"sync"
)

// Future is the completion handle of an asynchronous state initializer.
type Future[T any] struct {
	mu     sync.Mutex
	settle sync.Once
	done   chan struct{}
	value  T
	err    error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Done returns a channel closed when the initializer has completed,
// successfully or not.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the initializer completes or the context is cancelled.
// On failure it returns the initializer's error; the zero value is returned
// alongside any error.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.err != nil {
			var zero T
			return zero, f.err
		}
		return f.value, nil
	}
}

// Err returns the initializer's error. It is only meaningful after Done is
// closed; before completion it returns nil.
func (f *Future[T]) Err() error {
	select {
	case <-f.done:
	default:
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Future[T]) complete(value T, err error) {
	f.settle.Do(func() {
		f.mu.Lock()
		f.value = value
		f.err = err
		f.mu.Unlock()
		close(f.done)
	})
}
