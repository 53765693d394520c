// Package bindtest provides helpers for testing binding-layer code.
package bindtest

import (
	"sync"
	"testing"
	"time"
)

// RecordingHost counts invalidations, standing in for a host component.
// Safe for concurrent use.
type RecordingHost struct {
	mu            sync.Mutex
	invalidations int
}

// Invalidate records a re-render request.
func (h *RecordingHost) Invalidate() {
	h.mu.Lock()
	h.invalidations++
	h.mu.Unlock()
}

// Invalidations returns the number of re-render requests so far.
func (h *RecordingHost) Invalidations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.invalidations
}

// Reset clears the invalidation count.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	h.invalidations = 0
	h.mu.Unlock()
}

// Eventually polls cond until it returns true or the timeout elapses,
// failing the test on timeout.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

// Never asserts that cond stays false for the full duration.
func Never(t *testing.T, duration time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		if cond() {
			t.Fatal("condition unexpectedly became true")
		}
		time.Sleep(2 * time.Millisecond)
	}
}
