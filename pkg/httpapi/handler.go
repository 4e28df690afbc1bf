package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"sepulcher/pkg/audit"
	"sepulcher/pkg/collections"
	"sepulcher/pkg/counter"
	"sepulcher/pkg/linking"
	"sepulcher/pkg/logging"
	"sepulcher/pkg/metrics"
)

// rateResponse is the body of a successful /rate response.
type rateResponse struct {
	Allowed bool `json:"allowed"`
}

// RateHandler answers GET /rate/{collection}/{key} by checking and
// incrementing that collection's counter for key, optionally combining it
// with linked collections' totals.
type RateHandler struct {
	counters atomic.Pointer[map[string]*counter.ShardedCounter]
	limits   atomic.Pointer[map[string]uint64]
	linker   atomic.Pointer[linking.ContextLinker]
	logger   *logging.Logger
	metrics  *metrics.Metrics
	recorder *audit.Recorder
}

// NewRateHandler builds counters for every collection in set (and, if
// linker is non-nil, every collection it names) and returns a handler ready
// to serve requests. linker may be nil when context linking is not
// configured.
func NewRateHandler(set *collections.Set, linker *linking.ContextLinker, logger *logging.Logger, m *metrics.Metrics) *RateHandler {
	h := &RateHandler{logger: logger, metrics: m}
	h.Reload(set, linker)
	return h
}

// Reload atomically swaps the handler's collections and counters, used by
// configuration hot-reload. Counters for collections that existed before
// the reload and still exist after it are NOT preserved — config only ever
// changes the rate/window definitions, not the live event history, and
// rebuilding the counters along with it keeps behavior predictable.
func (h *RateHandler) Reload(set *collections.Set, linker *linking.ContextLinker) {
	counters := make(map[string]*counter.ShardedCounter)
	limits := make(map[string]uint64)

	for name, c := range set.Collections {
		counters[name] = counter.New(counter.Config{
			TTLSecs:    set.TTLSeconds,
			WindowSecs: uint64(c.Window.Seconds()),
		})
		limits[name] = c.CountLimit
	}

	if linker != nil {
		for name, ttl := range linker.GetTTLs() {
			if _, ok := counters[name]; !ok {
				counters[name] = counter.New(counter.Config{TTLSecs: ttl})
			}
			if link, ok := linker.GetContext(name); ok {
				limits[name] = link.Rate
			}
		}
	}

	h.counters.Store(&counters)
	h.limits.Store(&limits)
	h.linker.Store(linker)
}

// SetRecorder attaches an audit recorder; every decision ServeHTTP makes
// afterward is additionally recorded through it. A nil recorder (the
// default) disables audit recording entirely.
func (h *RateHandler) SetRecorder(r *audit.Recorder) {
	h.recorder = r
}

// Counters returns the handler's current collection -> counter map, for
// callers that need to drive background maintenance (clock ticking,
// sweeping) or readiness reporting over the same counters the handler
// serves requests from.
func (h *RateHandler) Counters() map[string]*counter.ShardedCounter {
	return *h.counters.Load()
}

// ServeHTTP implements the GET /rate/{collection}/{key} endpoint.
func (h *RateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		newAPIError(http.StatusMethodNotAllowed, "method not allowed").write(w)
		return
	}

	collection := r.PathValue("collection")
	if collection == "" {
		newAPIError(http.StatusBadRequest, "missing collection parameter").write(w)
		return
	}

	key := r.PathValue("key")
	if key == "" {
		newAPIError(http.StatusBadRequest, "missing key parameter").write(w)
		return
	}

	counters := *h.counters.Load()
	c, ok := counters[collection]
	if !ok {
		newAPIError(http.StatusBadRequest, "no counter for collection parameter").write(w)
		return
	}

	limits := *h.limits.Load()
	limit, ok := limits[collection]
	if !ok {
		newAPIError(http.StatusBadRequest, "no rate configured for collection parameter").write(w)
		return
	}

	start := time.Now()
	total, err := c.GetOrCreate(key, true)
	if err != nil {
		h.observe(collection, "error", start)
		h.logger.Error("get_or_create failed", "collection", collection, "error", err)
		newAPIError(http.StatusInternalServerError, "failed to get_or_create value: "+err.Error()).write(w)
		return
	}

	if total > limit {
		h.observe(collection, "denied", start)
		h.record(collection, key, false, total, limit)
		h.writeAllowed(w, false)
		return
	}

	linker := h.linker.Load()
	if linker == nil {
		h.observe(collection, "allowed", start)
		h.record(collection, key, true, total, limit)
		h.writeAllowed(w, true)
		return
	}

	link, ok := linker.GetContext(collection)
	if !ok || len(link.Contexts) == 0 {
		h.observe(collection, "allowed", start)
		h.record(collection, key, true, total, limit)
		h.writeAllowed(w, true)
		return
	}

	var linked uint64
	for _, ctx := range link.Contexts {
		lc, ok := counters[ctx]
		if !ok {
			newAPIError(http.StatusBadRequest, "no counter for linked collection "+ctx).write(w)
			return
		}
		v, err := lc.GetOrCreate(key, false)
		if err != nil {
			h.observe(collection, "error", start)
			newAPIError(http.StatusInternalServerError, "failed to get value for linked collection: "+err.Error()).write(w)
			return
		}
		linked += v
	}

	allowed := linked <= limit
	if allowed {
		h.observe(collection, "allowed", start)
	} else {
		h.observe(collection, "denied", start)
	}
	h.record(collection, key, allowed, linked, limit)
	h.writeAllowed(w, allowed)
}

func (h *RateHandler) observe(collection, result string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveCheck(collection, result, time.Since(start))
	}
}

func (h *RateHandler) record(collection, key string, allowed bool, total, limit uint64) {
	if h.recorder != nil {
		h.recorder.Record(audit.NewDecision(collection, key, allowed, total, limit))
	}
}

func (h *RateHandler) writeAllowed(w http.ResponseWriter, allowed bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rateResponse{Allowed: allowed})
}
