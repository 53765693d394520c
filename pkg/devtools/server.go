package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/statebind/pkg/errors"
	"github.com/go-drift/statebind/pkg/store"
)

// Config controls the inspection server.
type Config struct {
	// Port is the TCP port to listen on. 0 picks an ephemeral port.
	Port int
}

// Server exposes registered sources and the watcher registry over HTTP.
//
// Endpoints:
//
//	/snapshot  current state of registered sources (JSON, or YAML with ?format=yaml)
//	/watchers  live selector watchers
//	/health    liveness check
type Server struct {
	registry *Registry
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer creates a Server backed by the given registry.
func NewServer(registry *Registry) *Server {
	return &Server{registry: registry}
}

// Start begins serving on the configured port and returns the actual port,
// which is useful when Config.Port is 0. Starting an already-running server
// returns its current port.
func (s *Server) Start(cfg Config) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		if s.listener != nil {
			return s.listener.Addr().(*net.TCPAddr).Port, nil
		}
		return cfg.Port, nil
	}

	// Bind the listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return 0, fmt.Errorf("devtools listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/watchers", handleWatchers)
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			errors.Report(&errors.BindError{
				Op:   "devtools.Server.serve",
				Kind: errors.KindUnknown,
				Err:  err,
			})
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

// handleSnapshot returns the registered sources' current state.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Recover from panics during serialization
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	snapshot := s.registry.Snapshot()

	if r.URL.Query().Get("format") == "yaml" {
		data, err := yaml.Marshal(snapshot)
		if err != nil {
			http.Error(w, fmt.Sprintf("yaml encode error: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
		return
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleWatchers returns the live selector-watcher registry.
func handleWatchers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	watchers := store.Watchers()
	sort.Slice(watchers, func(i, j int) bool {
		if !watchers[i].Since.Equal(watchers[j].Since) {
			return watchers[i].Since.Before(watchers[j].Since)
		}
		return watchers[i].ID < watchers[j].ID
	})

	resp := struct {
		Watchers []store.WatcherInfo `json:"watchers"`
	}{
		Watchers: watchers,
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
