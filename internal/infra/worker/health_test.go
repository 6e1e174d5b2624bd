package worker

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHealthServer() *HealthServer {
	return NewHealthServer(0, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Status
}

func TestHealthServer_Liveness(t *testing.T) {
	hs := newTestHealthServer()

	rec := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := decodeStatus(t, rec); got != "alive" {
		t.Errorf("body status = %q", got)
	}
}

func TestHealthServer_Readiness(t *testing.T) {
	hs := newTestHealthServer()

	rec := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before ready = %d, want 503", rec.Code)
	}

	hs.SetReady(true)

	rec = httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status after ready = %d, want 200", rec.Code)
	}
	if got := decodeStatus(t, rec); got != "ready" {
		t.Errorf("body status = %q", got)
	}
}

func TestHealthServer_ReadinessCanFlipBack(t *testing.T) {
	hs := newTestHealthServer()
	hs.SetReady(true)
	hs.SetReady(false)

	rec := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
