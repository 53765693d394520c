package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// WatcherInfo describes a live selector watcher.
type WatcherInfo struct {
	// ID is a unique identifier assigned at registration.
	ID string `json:"id"`
	// Label is the optional human-readable label from WatchLabeled.
	Label string `json:"label,omitempty"`
	// Fires is the number of times the watcher's onChange has fired.
	Fires uint64 `json:"fires"`
	// Since is when the watcher was registered.
	Since time.Time `json:"since"`
}

type watcherEntry struct {
	label string
	since time.Time
	fires atomic.Uint64
}

var (
	watchersMu sync.RWMutex
	watchers   = make(map[string]*watcherEntry)
)

// Watchers returns a snapshot of all live selector watchers.
func Watchers() []WatcherInfo {
	watchersMu.RLock()
	defer watchersMu.RUnlock()

	infos := make([]WatcherInfo, 0, len(watchers))
	for id, entry := range watchers {
		infos = append(infos, WatcherInfo{
			ID:    id,
			Label: entry.label,
			Fires: entry.fires.Load(),
			Since: entry.since,
		})
	}
	return infos
}

// WatcherCount returns the number of live selector watchers.
func WatcherCount() int {
	watchersMu.RLock()
	defer watchersMu.RUnlock()
	return len(watchers)
}

func registerWatcher(label string) string {
	id := uuid.NewString()
	watchersMu.Lock()
	watchers[id] = &watcherEntry{label: label, since: time.Now()}
	watchersMu.Unlock()
	return id
}

func unregisterWatcher(id string) {
	watchersMu.Lock()
	delete(watchers, id)
	watchersMu.Unlock()
}

func markWatcherFired(id string) {
	watchersMu.RLock()
	entry := watchers[id]
	watchersMu.RUnlock()
	if entry != nil {
		entry.fires.Add(1)
	}
}
