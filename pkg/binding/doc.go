// Package binding glues host UI components to observable stores.
//
// The package provides four cooperating pieces:
//
// Select and SelectWith bind a component to a derived store value for the
// component's lifetime, re-rendering the host whenever the selector's result
// changes by value.
//
// NewAsync creates a state cell whose initial value may be replaced once an
// asynchronous initializer completes, unless the owning component has been
// disposed in the meantime.
//
// NewPatchable wraps a keyed record with partial-update, nested-entry-update
// and two-way field-binding operations, backed by a synchronously readable
// mirror of the latest committed value.
//
// Debounce and DebounceLatest wrap callbacks so bursts collapse into a
// single trailing invocation.
//
// # Lifecycle
//
// Every hook is anchored to a Lifecycle owned by the component instance.
// The host framework creates the Lifecycle on mount and calls Dispose on
// unmount; disposal releases subscriptions exactly once and suppresses any
// late-arriving asynchronous results:
//
//	lc := binding.NewLifecycle()
//	name := binding.Select(lc, host, appState, func(s AppState) string {
//	    return s.UserName
//	})
//	// ... render using name.Value() ...
//	lc.Dispose() // on unmount
//
// Hooks run on the UI thread. To apply results produced on background
// goroutines through the host's scheduler, register a dispatcher with
// RegisterDispatch; without one, callbacks apply inline.
package binding
