// Package server exposes the resolved navigation tree to the rendering
// system over HTTP: GET /nav returns the current forest as JSON together
// with a generation counter consumers diff against.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/booknav/internal/book"
)

// State is one immutable snapshot of the loaded tree. A new snapshot is
// swapped in on every successful reload; failed reloads keep the previous
// snapshot (last-good semantics).
type State struct {
	Generation uint64       `json:"generation"`
	LoadedAt   time.Time    `json:"loaded_at"`
	Book       *book.Book   `json:"-"`
	Issues     []book.Issue `json:"issues,omitempty"`
}

// Server serves the current snapshot.
type Server struct {
	addr     string
	registry *prom.Registry

	mu    sync.RWMutex
	state *State

	httpServer *http.Server
}

// New creates a server. A nil registry disables the /metrics endpoint.
func New(addr string, registry *prom.Registry) *Server {
	s := &Server{addr: addr, registry: registry}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /nav", s.handleNav)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Swap publishes a new snapshot, assigning it the next generation, and
// returns that generation.
func (s *Server) Swap(b *book.Book, issues []book.Issue) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var gen uint64 = 1
	if s.state != nil {
		gen = s.state.Generation + 1
	}
	s.state = &State{
		Generation: gen,
		LoadedAt:   time.Now().UTC(),
		Book:       b,
		Issues:     issues,
	}
	return gen
}

// Current returns the current snapshot, or nil before the first Swap.
func (s *Server) Current() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handler returns the HTTP handler, for tests and embedding hosts.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		slog.Info("Navigation server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errChan
}

type navResponse struct {
	Generation uint64       `json:"generation"`
	LoadedAt   time.Time    `json:"loaded_at"`
	UpperTabs  []*book.Tab  `json:"upper_tabs,omitempty"`
	LowerTabs  []*book.Tab  `json:"lower_tabs,omitempty"`
	Issues     []book.Issue `json:"issues,omitempty"`
}

func (s *Server) handleNav(w http.ResponseWriter, _ *http.Request) {
	state := s.Current()
	if state == nil {
		http.Error(w, "navigation tree not loaded yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, navResponse{
		Generation: state.Generation,
		LoadedAt:   state.LoadedAt,
		UpperTabs:  state.Book.UpperTabs,
		LowerTabs:  state.Book.LowerTabs,
		Issues:     state.Issues,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	state := s.Current()
	if state == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generation": state.Generation,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
