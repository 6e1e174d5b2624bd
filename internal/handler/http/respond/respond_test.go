package respond

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, 201, map[string]string{"id": "1"})

	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := decodeBody(t, rec); body["id"] != "1" {
		t.Errorf("body = %v", body)
	}
}

func TestSafeError_PassesValidationMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, 400, errors.New("title is required"))

	if body := decodeBody(t, rec); body["error"] != "title is required" {
		t.Errorf("body = %v", body)
	}
}

func TestSafeError_MasksInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, 500, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if body := decodeBody(t, rec); body["error"] != "internal server error" {
		t.Errorf("body = %v, want generic message", body)
	}
}

func TestSafeError_500AlwaysInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	// message looks safe but the code forces the generic response
	SafeError(rec, 500, errors.New("publisher not found"))

	if body := decodeBody(t, rec); body["error"] != "internal server error" {
		t.Errorf("body = %v, want generic message", body)
	}
}

func TestSafeErrorV2_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	appErr := NewAppError(409, "article already approved", errors.New("update matched no rows"))
	SafeErrorV2(rec, 500, appErr)

	if rec.Code != 409 {
		t.Errorf("status = %d, want AppError code 409", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "article already approved" {
		t.Errorf("body = %v", body)
	}
}

func TestSafeErrorV2_FallsBackToSafeError(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeErrorV2(rec, 404, errors.New("newsletter not found"))

	if rec.Code != 404 {
		t.Errorf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "newsletter not found" {
		t.Errorf("body = %v", body)
	}
}
