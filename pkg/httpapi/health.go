package httpapi

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler answers GET /healthz: liveness only, never fails once the
// process is serving requests at all.
type HealthHandler struct{}

// NewHealthHandler returns a liveness handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		newAPIError(http.StatusMethodNotAllowed, "method not allowed").write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// PoisonChecker reports how many partitions are currently poisoned across
// every counter the service manages, used by the readiness probe.
type PoisonChecker interface {
	PoisonedPartitions() int
}

// ReadyHandler answers GET /readyz: the service is ready unless every
// counter reports at least one poisoned partition. With no counters at all
// it reports ready.
type ReadyHandler struct {
	counters map[string]PoisonChecker
}

// NewReadyHandler returns a readiness handler over the given collection ->
// counter map.
func NewReadyHandler(counters map[string]PoisonChecker) *ReadyHandler {
	return &ReadyHandler{counters: counters}
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		newAPIError(http.StatusMethodNotAllowed, "method not allowed").write(w)
		return
	}

	poisoned := make(map[string]int)
	for name, c := range h.counters {
		if n := c.PoisonedPartitions(); n > 0 {
			poisoned[name] = n
		}
	}

	status := "ready"
	code := http.StatusOK
	if len(poisoned) == len(h.counters) && len(h.counters) > 0 {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":            status,
		"poisoned_counters": poisoned,
		"timestamp":         time.Now().Unix(),
	})
}
