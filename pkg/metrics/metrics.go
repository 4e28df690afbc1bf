package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector this service registers.
type Metrics struct {
	counterChecks    *prometheus.CounterVec
	checkDuration    *prometheus.HistogramVec
	sweeperRuns      prometheus.Counter
	sweeperBuckets   prometheus.Counter
	sweeperKeys      prometheus.Counter
	partitionsPoison prometheus.Gauge
	httpRequests     *prometheus.CounterVec
}

// New registers and returns the service's metrics.
func New() *Metrics {
	return &Metrics{
		counterChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sepulcher_counter_checks_total",
				Help: "Total number of GetOrCreate checks performed, by collection and result.",
			},
			[]string{"collection", "result"},
		),
		checkDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sepulcher_counter_check_duration_seconds",
				Help:    "Latency of a single GetOrCreate call, by collection.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collection"},
		),
		sweeperRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sepulcher_sweeper_runs_total",
			Help: "Total number of completed sweep cycles.",
		}),
		sweeperBuckets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sepulcher_sweeper_buckets_dropped_total",
			Help: "Total number of expired buckets dropped across all sweeps.",
		}),
		sweeperKeys: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sepulcher_sweeper_keys_dropped_total",
			Help: "Total number of keys dropped (became empty) across all sweeps.",
		}),
		partitionsPoison: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sepulcher_partitions_poisoned",
			Help: "Current number of poisoned partitions across all counters.",
		}),
		httpRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sepulcher_http_requests_total",
				Help: "Total HTTP requests, by path and status code.",
			},
			[]string{"path", "code"},
		),
	}
}

// ObserveCheck records a single GetOrCreate call's outcome and latency.
func (m *Metrics) ObserveCheck(collection, result string, d time.Duration) {
	m.counterChecks.WithLabelValues(collection, result).Inc()
	m.checkDuration.WithLabelValues(collection).Observe(d.Seconds())
}

// ObserveSweep records a completed sweep cycle's effect.
func (m *Metrics) ObserveSweep(bucketsDropped, keysDropped int, poisonedPartitions int) {
	m.sweeperRuns.Inc()
	m.sweeperBuckets.Add(float64(bucketsDropped))
	m.sweeperKeys.Add(float64(keysDropped))
	m.partitionsPoison.Set(float64(poisonedPartitions))
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(path string, code int) {
	m.httpRequests.WithLabelValues(path, httpCodeLabel(code)).Inc()
}

func httpCodeLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "other"
	}
}
