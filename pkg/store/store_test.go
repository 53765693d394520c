package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionState struct {
	UserName string
	Sessions []string
}

func TestSelect(t *testing.T) {
	src := NewObservable(sessionState{UserName: "alice"})

	name := Select[sessionState](src, func(s sessionState) string { return s.UserName })
	assert.Equal(t, "alice", name)
}

func TestWatch_FiresOnValueChange(t *testing.T) {
	src := NewObservable(sessionState{UserName: "alice"})

	var got []string
	unsub := Watch[sessionState](src, func(s sessionState) string {
		return s.UserName
	}, func(name string) {
		got = append(got, name)
	})
	defer unsub()

	src.Set(sessionState{UserName: "bob"})
	assert.Equal(t, []string{"bob"}, got)
}

func TestWatch_ComparesByValueNotIdentity(t *testing.T) {
	src := NewObservable(sessionState{UserName: "alice", Sessions: []string{"s1"}})

	fired := 0
	// The selector builds a fresh slice on every evaluation; only its
	// contents should matter.
	unsub := Watch[sessionState](src, func(s sessionState) []string {
		return append([]string(nil), s.Sessions...)
	}, func([]string) {
		fired++
	})
	defer unsub()

	// Unrelated field change: selector output is a new slice with equal
	// contents, so the watcher must stay quiet.
	src.Set(sessionState{UserName: "bob", Sessions: []string{"s1"}})
	assert.Equal(t, 0, fired)

	src.Set(sessionState{UserName: "bob", Sessions: []string{"s1", "s2"}})
	assert.Equal(t, 1, fired)
}

func TestWatch_UnsubscribeIdempotent(t *testing.T) {
	src := NewObservable(sessionState{})
	before := WatcherCount()

	unsub := Watch[sessionState](src, func(s sessionState) string {
		return s.UserName
	}, func(string) {})

	require.Equal(t, before+1, WatcherCount())
	require.Equal(t, 1, src.ListenerCount())

	unsub()
	assert.Equal(t, before, WatcherCount())
	assert.Equal(t, 0, src.ListenerCount())

	// A second call must not double-unregister.
	unsub()
	assert.Equal(t, before, WatcherCount())
}

func TestWatchLabeled_RegistryEntry(t *testing.T) {
	src := NewObservable(sessionState{UserName: "alice"})

	unsub := WatchLabeled[sessionState](src, "session.userName", func(s sessionState) string {
		return s.UserName
	}, func(string) {})
	defer unsub()

	var entry *WatcherInfo
	for _, info := range Watchers() {
		if info.Label == "session.userName" {
			entry = &info
			break
		}
	}
	require.NotNil(t, entry, "labeled watcher should appear in the registry")
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, uint64(0), entry.Fires)

	src.Set(sessionState{UserName: "bob"})
	src.Set(sessionState{UserName: "carol"})

	fires := uint64(0)
	for _, info := range Watchers() {
		if info.ID == entry.ID {
			fires = info.Fires
		}
	}
	assert.Equal(t, uint64(2), fires)
}
