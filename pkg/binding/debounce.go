package binding

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Debounce wraps fn so repeated calls within window collapse into a single
// trailing invocation.
//
// Construct the wrapper once per component and store it; the returned
// function's identity is stable for the lifecycle's duration. Disposal
// suppresses any pending trailing call. A zero window fires on (nearly)
// every call, still on the trailing edge.
func Debounce(lc *Lifecycle, window time.Duration, fn func()) func() {
	token := lc.Token()
	debounced := debounce.New(window)
	return func() {
		debounced(func() {
			if !token.Alive() {
				return
			}
			dispatch(func() {
				if token.Alive() {
					fn()
				}
			})
		})
	}
}

// DebounceLatest is Debounce for callbacks taking an argument: the trailing
// invocation receives the argument of the most recent call in the window.
func DebounceLatest[A any](lc *Lifecycle, window time.Duration, fn func(A)) func(A) {
	token := lc.Token()
	debounced := debounce.New(window)

	var mu sync.Mutex
	var latest A

	fire := func() {
		mu.Lock()
		arg := latest
		mu.Unlock()
		if !token.Alive() {
			return
		}
		dispatch(func() {
			if token.Alive() {
				fn(arg)
			}
		})
	}

	return func(arg A) {
		mu.Lock()
		latest = arg
		mu.Unlock()
		debounced(fire)
	}
}
