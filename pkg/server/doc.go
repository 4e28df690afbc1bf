// Package server wires the rate-limit HTTP handlers and middleware chain
// into a net/http.Server with graceful shutdown.
//
// # Basic usage
//
//	handlers := server.Handlers{Rate: rateHandler, Health: healthHandler, Ready: readyHandler, Metrics: metricsHandler}
//	srv := server.New(&cfg.Server, &cfg.TLS, &cfg.Metrics, handlers, logger, m)
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful shutdown
//
// Start blocks until ctx is cancelled, a SIGTERM/SIGINT is received,
// Shutdown is called, or the server fails. In all but the last case it then
// calls Shutdown, which stops accepting new connections and waits (up to
// the configured timeout) for active ones to complete; when the server
// fails, Start returns its error.
//
// # Routes
//
//   - GET  /rate/{collection}/{key} - rate-limit decision
//   - GET  /healthz                 - liveness
//   - GET  /readyz                  - readiness
//   - GET  /metrics                 - Prometheus exposition (if enabled)
//
// # Middleware chain
//
// Innermost to outermost: request ID, logging (+ metrics), recovery.
package server
