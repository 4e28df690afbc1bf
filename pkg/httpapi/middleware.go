package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"sepulcher/pkg/logging"
	"sepulcher/pkg/metrics"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware assigns every request a correlation ID, reusing one
// supplied by the client if present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = generateRequestID()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "fallback-request-id"
	}
	return hex.EncodeToString(b)
}

func getRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// loggingMiddleware logs a line per completed request and, when m is
// non-nil, feeds the request's path and status into metrics.
func loggingMiddleware(logger *logging.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"latency_ms", time.Since(start).Milliseconds(),
				"request_id", getRequestID(r.Context()),
			)
			if m != nil {
				m.ObserveHTTPRequest(r.Pattern, rw.statusCode)
			}
		})
	}
}

// Chain wraps next in this package's full middleware stack: request ID
// assignment, then logging (feeding m when non-nil), then panic recovery
// as the outermost layer.
func Chain(next http.Handler, logger *logging.Logger, m *metrics.Metrics) http.Handler {
	h := requestIDMiddleware(next)
	h = loggingMiddleware(logger, m)(h)
	h = recoveryMiddleware(logger)(h)
	return h
}

// recoveryMiddleware converts a panicking handler into a 500 response
// instead of taking the whole server down.
func recoveryMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						"error", rec,
						"request_id", getRequestID(r.Context()),
						"path", r.URL.Path,
					)
					newAPIError(http.StatusInternalServerError, "an internal error occurred").write(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
