package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"sepulcher/pkg/config"
	"sepulcher/pkg/httpapi"
	"sepulcher/pkg/logging"
	"sepulcher/pkg/metrics"
	tlsconfig "sepulcher/pkg/security/tls"
)

// Handlers is every HTTP handler the server mounts. Any field left nil is
// simply not routed.
type Handlers struct {
	Rate    http.Handler
	Health  http.Handler
	Ready   http.Handler
	Metrics http.Handler
}

// Server is sepulcherd's HTTP server: route wiring, middleware chain, and
// graceful shutdown over a net/http.Server.
type Server struct {
	cfg        *config.ServerConfig
	tlsCfg     *config.TLSConfig
	metricsCfg *config.MetricsConfig
	handlers   Handlers
	logger     *logging.Logger
	metrics    *metrics.Metrics

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New constructs a Server. Call Start to begin serving.
func New(cfg *config.ServerConfig, tlsCfg *config.TLSConfig, metricsCfg *config.MetricsConfig, handlers Handlers, logger *logging.Logger, m *metrics.Metrics) *Server {
	return &Server{
		cfg:          cfg,
		tlsCfg:       tlsCfg,
		metricsCfg:   metricsCfg,
		handlers:     handlers,
		logger:       logger,
		metrics:      m,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled,
// a SIGTERM/SIGINT is received, Shutdown is called, or the server fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	if s.tlsCfg.Enabled {
		tlsConf, err := (&tlsconfig.Config{
			Enabled:  s.tlsCfg.Enabled,
			CertFile: s.tlsCfg.CertFile,
			KeyFile:  s.tlsCfg.KeyFile,
		}).ToTLSConfig()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConf
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", s.cfg.ListenAddress, "tls_enabled", s.tlsCfg.Enabled)

		var err error
		if s.tlsCfg.Enabled {
			err = s.httpServer.ListenAndServeTLS(s.tlsCfg.CertFile, s.tlsCfg.KeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the server, waiting up to the configured
// shutdown timeout for active connections to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		close(s.shutdownChan)

		s.logger.Info("initiating graceful shutdown", "timeout", s.cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes builds the routed mux and wraps it in the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	if s.handlers.Rate != nil {
		mux.Handle("GET /rate/{collection}/{key}", s.handlers.Rate)
	}
	if s.handlers.Health != nil {
		mux.Handle("GET /healthz", s.handlers.Health)
	}
	if s.handlers.Ready != nil {
		mux.Handle("GET /readyz", s.handlers.Ready)
	}
	if s.handlers.Metrics != nil && s.metricsCfg != nil && s.metricsCfg.Enabled {
		path := s.metricsCfg.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, s.handlers.Metrics)
	}

	return httpapi.Chain(mux, s.logger, s.metrics)
}

// IsRunning reports whether the server is currently accepting requests.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the fully-wired HTTP handler, useful for tests that want
// to drive the server via httptest without a real listener.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
