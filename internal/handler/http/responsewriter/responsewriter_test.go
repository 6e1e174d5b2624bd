package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	if w.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200", w.StatusCode())
	}
	if w.BytesWritten() != 0 {
		t.Errorf("BytesWritten() = %d, want 0", w.BytesWritten())
	}
}

func TestWriteHeader_RecordsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError) // superfluous, dropped

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", w.StatusCode())
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorder code = %d, want 404", rec.Code)
	}
}

func TestWrite_AccumulatesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	_, _ = w.Write([]byte("hello "))
	_, _ = w.Write([]byte("world"))

	if w.BytesWritten() != 11 {
		t.Errorf("BytesWritten() = %d, want 11", w.BytesWritten())
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want implicit 200", w.StatusCode())
	}
	if rec.Body.String() != "hello world" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	if w.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}
