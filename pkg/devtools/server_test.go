package devtools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/statebind/pkg/store"
)

func TestRegistry_SnapshotAndRemove(t *testing.T) {
	registry := NewRegistry()

	remove := registry.Add("settings", func() any {
		return map[string]any{"quality": "high"}
	})

	snapshot := registry.Snapshot()
	require.Contains(t, snapshot, "settings")
	assert.Equal(t, map[string]any{"quality": "high"}, snapshot["settings"])

	remove()
	assert.Empty(t, registry.Snapshot())
}

func TestRegistry_PanickingSourceIsolated(t *testing.T) {
	registry := NewRegistry()
	registry.Add("bad", func() any { panic("broken source") })
	registry.Add("good", func() any { return 1 })

	snapshot := registry.Snapshot()
	assert.Equal(t, "panic: broken source", snapshot["bad"])
	assert.Equal(t, 1, snapshot["good"])
}

func TestServer_Endpoints(t *testing.T) {
	registry := NewRegistry()
	registry.Add("recorder", func() any {
		return map[string]any{"fileName": "take-1.mkv", "uploads": 2}
	})

	src := store.NewObservable(0)
	unsub := store.WatchLabeled(src, "recorder.uploads", func(v int) int { return v }, func(int) {})
	defer unsub()

	server := NewServer(registry)
	port, err := server.Start(Config{Port: 0})
	require.NoError(t, err)
	defer server.Stop()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)

	t.Run("health", func(t *testing.T) {
		body := get(t, base+"/health")
		assert.JSONEq(t, `{"status":"ok"}`, body)
	})

	t.Run("snapshot json", func(t *testing.T) {
		body := get(t, base+"/snapshot")

		var snapshot map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &snapshot))
		assert.Equal(t, "take-1.mkv", snapshot["recorder"]["fileName"])
	})

	t.Run("snapshot yaml", func(t *testing.T) {
		body := get(t, base+"/snapshot?format=yaml")

		var snapshot map[string]map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(body), &snapshot))
		assert.Equal(t, "take-1.mkv", snapshot["recorder"]["fileName"])
	})

	t.Run("watchers", func(t *testing.T) {
		body := get(t, base+"/watchers")

		var resp struct {
			Watchers []store.WatcherInfo `json:"watchers"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &resp))

		found := false
		for _, info := range resp.Watchers {
			if info.Label == "recorder.uploads" {
				found = true
			}
		}
		assert.True(t, found, "labeled watcher should be listed")
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Post(base+"/snapshot", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestServer_StartTwiceReturnsSamePort(t *testing.T) {
	server := NewServer(NewRegistry())
	port, err := server.Start(Config{Port: 0})
	require.NoError(t, err)
	defer server.Stop()

	again, err := server.Start(Config{Port: 0})
	require.NoError(t, err)
	assert.Equal(t, port, again)
}

func TestServer_StopIdempotent(t *testing.T) {
	server := NewServer(NewRegistry())
	_, err := server.Start(Config{Port: 0})
	require.NoError(t, err)

	server.Stop()
	server.Stop()
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
