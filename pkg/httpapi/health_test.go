package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePoisonChecker int

func (f fakePoisonChecker) PoisonedPartitions() int { return int(f) }

func TestHealthHandlerAlwaysOK(t *testing.T) {
	h := NewHealthHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestReadyHandlerReadyWhenNotAllPoisoned(t *testing.T) {
	h := NewReadyHandler(map[string]PoisonChecker{
		"logins":  fakePoisonChecker(0),
		"signups": fakePoisonChecker(4),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestReadyHandlerNotReadyWhenAllPoisoned(t *testing.T) {
	h := NewReadyHandler(map[string]PoisonChecker{
		"logins":  fakePoisonChecker(1),
		"signups": fakePoisonChecker(4),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}
}

func TestReadyHandlerReadyWithNoCounters(t *testing.T) {
	h := NewReadyHandler(map[string]PoisonChecker{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}
