package binding

import (
	"sync"

	"github.com/go-drift/statebind/pkg/errors"
)

// Async is a state cell whose initial value may be replaced once an
// asynchronous initializer completes.
type Async[T any] struct {
	mu     sync.RWMutex
	value  T
	token  Token
	host   Host
	future *Future[T]
}

// NewAsync creates an Async cell seeded with initial.
//
// If init is non-nil it is invoked exactly once, on a background goroutine,
// with the initial value as its only input. On success the returned value
// replaces the cell's state, but only if the owning lifecycle has not been
// disposed in the meantime; a late result is discarded. On failure the error
// resolves the cell's Future and the state is left untouched.
func NewAsync[T any](lc *Lifecycle, host Host, initial T, init func(T) (T, error)) *Async[T] {
	return NewAsyncFunc(lc, host, func() T { return initial }, init)
}

// NewAsyncFunc is NewAsync with the initial value produced by a zero-argument
// factory, for defaults that are expensive to construct.
func NewAsyncFunc[T any](lc *Lifecycle, host Host, factory func() T, init func(T) (T, error)) *Async[T] {
	a := &Async[T]{
		value: factory(),
		token: lc.Token(),
		host:  host,
	}
	if init != nil {
		a.future = newFuture[T]()
		seed := a.value
		go a.runInit(seed, init)
	}
	return a
}

// Value returns the current value.
func (a *Async[T]) Value() T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// Set replaces the current value and invalidates the host.
// After lifecycle disposal it is a no-op.
func (a *Async[T]) Set(value T) {
	if !a.token.Alive() {
		return
	}
	a.mu.Lock()
	a.value = value
	a.mu.Unlock()
	invalidate(a.host)
}

// Future returns the pending initializer handle, or nil when the cell was
// created without an initializer.
func (a *Async[T]) Future() *Future[T] {
	return a.future
}

func (a *Async[T]) runInit(seed T, init func(T) (T, error)) {
	value, err := init(seed)
	if err != nil {
		errors.Report(&errors.BindError{
			Op:   "binding.Async.init",
			Kind: errors.KindAsyncInit,
			Err:  err,
		})
		var zero T
		a.future.complete(zero, err)
		return
	}
	dispatch(func() {
		if a.token.Alive() {
			a.mu.Lock()
			a.value = value
			a.mu.Unlock()
			invalidate(a.host)
		}
		a.future.complete(value, nil)
	})
}
