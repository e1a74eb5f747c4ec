package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPServer_InstrumentHandler_RecordsStatus(t *testing.T) {
	provider := createTestProvider(t)

	s := NewHTTPServer(nil)
	s.SetMetrics(provider.Metrics())

	handler := s.instrumentHandler("/mcp", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestHTTPServer_InstrumentHandler_NoMetrics(t *testing.T) {
	s := NewHTTPServer(nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Without metrics the handler is returned unwrapped
	handler := s.instrumentHandler("/mcp", inner)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHTTPServer_ShutdownWithoutStart(t *testing.T) {
	s := NewHTTPServer(nil)

	if err := s.Shutdown(t.Context()); err != nil {
		t.Errorf("Shutdown() without Start() error = %v", err)
	}
}
