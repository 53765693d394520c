// Package devtools provides an HTTP inspection server for observable
// sources and the selector-watcher registry.
package devtools

import (
	"fmt"
	"sync"
)

// SnapshotFunc returns a serializable view of a source's current state.
type SnapshotFunc func() any

// Registry names the sources exposed by the inspection server.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]SnapshotFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]SnapshotFunc)}
}

// Add registers a source snapshot under the given name, replacing any
// previous registration with that name. The returned function removes the
// registration.
func (r *Registry) Add(name string, fn SnapshotFunc) func() {
	r.mu.Lock()
	r.sources[name] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.sources, name)
		r.mu.Unlock()
	}
}

// Snapshot evaluates every registered source. A source that panics during
// snapshotting is represented by its panic message instead of taking the
// whole snapshot down.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	funcs := make(map[string]SnapshotFunc, len(r.sources))
	for name, fn := range r.sources {
		funcs[name] = fn
	}
	r.mu.RUnlock()

	snapshot := make(map[string]any, len(funcs))
	for name, fn := range funcs {
		snapshot[name] = safeSnapshot(fn)
	}
	return snapshot
}

func safeSnapshot(fn SnapshotFunc) (result any) {
	defer func() {
		if rec := recover(); rec != nil {
			result = fmt.Sprintf("panic: %v", rec)
		}
	}()
	return fn()
}
