package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseBufferFlush(t *testing.T) {
	buf := NewResponseBuffer()
	buf.Header().Set("X-Test", "1")
	buf.WriteHeader(http.StatusTeapot)
	buf.WriteHeader(http.StatusOK)
	buf.Write([]byte("hello"))

	if buf.Status() != http.StatusTeapot {
		t.Fatalf("status = %d", buf.Status())
	}

	rec := httptest.NewRecorder()
	if err := buf.Flush(rec); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.Code != http.StatusTeapot || rec.Body.String() != "hello" || rec.Header().Get("X-Test") != "1" {
		t.Fatalf("recorded %d %q %v", rec.Code, rec.Body.String(), rec.Header())
	}
}

func TestResponseBufferDefaults(t *testing.T) {
	buf := NewResponseBuffer()
	if buf.Status() != http.StatusOK || len(buf.Body()) != 0 {
		t.Fatalf("status = %d body = %q", buf.Status(), buf.Body())
	}
	rec := httptest.NewRecorder()
	if err := buf.Flush(rec); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("code = %d", rec.Code)
	}
}
