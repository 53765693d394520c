// Package store provides the observable data sources that the binding layer
// subscribes to.
//
// A Source is anything that can be read synchronously and watched for
// changes. The package ships two concrete sources: Observable, a thread-safe
// reactive value, and Notifier, a valueless broadcast for refresh-style
// signals.
//
// # Selectors
//
// Derived values are read and watched through selector functions rather than
// through the source's raw state:
//
//	activeCount := store.Select(appState, func(s AppState) int {
//	    return len(s.ActiveSessions)
//	})
//
//	unsub := store.Watch(appState, func(s AppState) int {
//	    return len(s.ActiveSessions)
//	}, func(count int) {
//	    fmt.Printf("sessions: %d\n", count)
//	})
//	defer unsub()
//
// A watcher fires only when re-evaluating its selector yields a value that
// differs from the previous one by value semantics, not reference identity.
// Notifications are delivered in the order the source applies mutations.
//
// Every live watcher is tracked in a process-wide registry so the devtools
// package can list active subscriptions.
package store
