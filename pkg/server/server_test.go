package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sepulcher/pkg/config"
	"sepulcher/pkg/logging"
)

func newTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	l, err := logging.New(logging.Config{Level: "error", Format: "text"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return l
}

func TestHandlerRoutesHealthz(t *testing.T) {
	srv := New(
		&config.ServerConfig{ListenAddress: "127.0.0.1:0", ShutdownTimeout: time.Second},
		&config.TLSConfig{},
		&config.MetricsConfig{},
		Handlers{Health: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})},
		newTestLogger(t),
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestHandlerRecoversFromPanic(t *testing.T) {
	srv := New(
		&config.ServerConfig{ListenAddress: "127.0.0.1:0", ShutdownTimeout: time.Second},
		&config.TLSConfig{},
		&config.MetricsConfig{},
		Handlers{Rate: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})},
		newTestLogger(t),
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/rate/logins/user-1", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
}

func TestShutdownBeforeStartIsNoOp(t *testing.T) {
	srv := New(
		&config.ServerConfig{ListenAddress: "127.0.0.1:0", ShutdownTimeout: time.Second},
		&config.TLSConfig{},
		&config.MetricsConfig{},
		Handlers{},
		newTestLogger(t),
		nil,
	)

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
