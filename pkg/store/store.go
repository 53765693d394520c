package store

import (
	"reflect"
	"sync"
)

// Source is the read/watch surface of an observable store.
//
// The binding layer never owns or mutates a Source; it only reads the
// current state and registers change callbacks. Implementations must deliver
// callbacks in the order mutations are applied.
type Source[S any] interface {
	// Read returns the current state.
	Read() S
	// Subscribe registers a callback invoked after every mutation.
	// It returns an unsubscribe function.
	Subscribe(fn func(S)) func()
}

// Select evaluates a selector against the source's current state.
func Select[S, V any](src Source[S], selector func(S) V) V {
	return selector(src.Read())
}

// Watch registers a selector watcher on the source.
//
// The selector is re-evaluated on every source notification; onChange fires
// only when the derived value differs from the previous one, compared by
// value semantics (reflect.DeepEqual). The returned unsubscribe function is
// safe to call more than once.
func Watch[S, V any](src Source[S], selector func(S) V, onChange func(V)) func() {
	return WatchLabeled(src, "", selector, onChange)
}

// WatchLabeled is Watch with a human-readable label attached to the watcher's
// registry entry, for devtools inspection.
func WatchLabeled[S, V any](src Source[S], label string, selector func(S) V, onChange func(V)) func() {
	var mu sync.Mutex
	prev := selector(src.Read())

	id := registerWatcher(label)

	unsubscribe := src.Subscribe(func(state S) {
		next := selector(state)
		mu.Lock()
		if reflect.DeepEqual(prev, next) {
			mu.Unlock()
			return
		}
		prev = next
		mu.Unlock()
		markWatcherFired(id)
		onChange(next)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unregisterWatcher(id)
			if unsubscribe != nil {
				unsubscribe()
			}
		})
	}
}
