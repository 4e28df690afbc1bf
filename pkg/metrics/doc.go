// Package metrics exposes Prometheus metrics for the counter, sweeper, and
// HTTP surfaces, registered through promauto against the default registry
// and served at /metrics via promhttp.
package metrics
