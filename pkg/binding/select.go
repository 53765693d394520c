package binding

import (
	"sync"

	"github.com/go-drift/statebind/pkg/errors"
	"github.com/go-drift/statebind/pkg/store"
)

// Bound holds the live derived value produced by Select or SelectWith.
type Bound[V any] struct {
	mu      sync.RWMutex
	value   V
	release sync.Once
	unsub   func()
}

// Value returns the most recently propagated derived value.
func (b *Bound[V]) Value() V {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Release unsubscribes from the source. It is called automatically on
// lifecycle disposal; calling it again, or calling it manually first, is
// safe.
func (b *Bound[V]) Release() {
	b.release.Do(func() {
		safeUnsubscribe("binding.Bound.Release", b.unsub)
	})
}

func (b *Bound[V]) set(value V) {
	b.mu.Lock()
	b.value = value
	b.mu.Unlock()
}

// Select binds the component to a derived store value for the lifecycle's
// duration.
//
// The initial value is computed synchronously from the source's current
// state. Afterwards, whenever the source notifies and re-evaluating the
// selector yields a value that differs from the previous one by value
// semantics, the bound value is updated and the host invalidated. The
// watcher is released exactly once when the lifecycle is disposed.
func Select[S, V any](lc *Lifecycle, host Host, src store.Source[S], selector func(S) V) *Bound[V] {
	b := &Bound[V]{value: store.Select(src, selector)}
	token := lc.Token()

	b.unsub = store.Watch(src, selector, func(next V) {
		if !token.Alive() {
			return
		}
		dispatch(func() {
			if !token.Alive() {
				return
			}
			b.set(next)
			invalidate(host)
		})
	})

	lc.OnDispose(b.Release)
	return b
}

// SelectWith is the target-plus-selector call shape: the selector receives
// the target instead of the source state and is re-evaluated on every source
// notification. Subscription lifecycle is identical to Select.
func SelectWith[S, A, V any](lc *Lifecycle, host Host, src store.Source[S], target A, selector func(A) V) *Bound[V] {
	return Select(lc, host, src, func(S) V {
		return selector(target)
	})
}

// safeUnsubscribe calls a source-provided unsubscribe defensively: a nil or
// panicking unsubscribe is reported, never propagated to the component.
func safeUnsubscribe(op string, unsubscribe func()) {
	defer errors.Recover(op)
	if unsubscribe == nil {
		return
	}
	unsubscribe()
}
