// Package httpapi serves the rate-limit decision endpoint and the
// service's liveness/readiness/metrics surfaces.
package httpapi
