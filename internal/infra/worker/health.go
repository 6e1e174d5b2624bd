package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthServer exposes liveness, readiness and metrics endpoints for the
// worker process. Liveness always succeeds while the process runs;
// readiness flips on once the cron scheduler has started.
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	isReady atomic.Bool
	server  *http.Server
}

// NewHealthServer creates a health server listening on the given port.
func NewHealthServer(port int, logger *slog.Logger) *HealthServer {
	hs := &HealthServer{
		addr:   fmt.Sprintf(":%d", port),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", hs.handleLiveness)
	mux.HandleFunc("GET /health/ready", hs.handleReadiness)
	mux.Handle("GET /metrics", promhttp.Handler())

	hs.server = &http.Server{
		Addr:              hs.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return hs
}

// Start serves health endpoints until ctx is cancelled, then shuts the
// listener down gracefully.
func (hs *HealthServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		hs.logger.Info("health server starting", slog.String("addr", hs.addr))
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("health server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("health server shutdown: %w", err)
		}
		return nil
	}
}

// SetReady marks the worker as ready to run scheduled jobs.
func (hs *HealthServer) SetReady(ready bool) {
	hs.isReady.Store(ready)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (hs *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, "alive")
}

func (hs *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if !hs.isReady.Load() {
		writeHealth(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	writeHealth(w, http.StatusOK, "ready")
}

func writeHealth(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: msg})
}
