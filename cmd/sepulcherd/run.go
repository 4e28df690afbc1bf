package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"sepulcher/pkg/audit"
	"sepulcher/pkg/audit/storage"
	"sepulcher/pkg/cli"
	"sepulcher/pkg/config"
	"sepulcher/pkg/counter"
	"sepulcher/pkg/httpapi"
	"sepulcher/pkg/linking"
	"sepulcher/pkg/logging"
	"sepulcher/pkg/metrics"
	"sepulcher/pkg/server"
)

var runFlags struct {
	listenAddress string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the rate-limit server",
	Long: `Start the HTTP server that answers GET /rate/{collection}/{key}, along with
its background clock and sweep tasks.

Examples:
  # Start with default config
  sepulcherd run

  # Start with a custom config file
  sepulcherd run --config /etc/sepulcherd/config.yaml

  # Override the listen address
  sepulcherd run --listen 0.0.0.0:9000

  # Validate configuration without starting the server
  sepulcherd run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		AddSource:      cfg.Logging.AddSource,
		RedactPII:      cfg.Logging.RedactPII,
		RedactPatterns: toLoggingPatterns(cfg.Logging.RedactPatterns),
		Writer:         os.Stdout,
	})
	if err != nil {
		return cli.NewConfigError("logging", fmt.Sprintf("failed to configure logging: %v", err))
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	set, err := loadCollections(&cfg.Collections)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	logger.Info("collections loaded", "count", len(set.Collections))

	var linker *linking.ContextLinker
	if cfg.Linking.Enabled {
		data, err := os.ReadFile(cfg.Linking.File)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("read linking file: %w", err))
		}
		linker, err = linking.New(string(data))
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("parse linking file: %w", err))
		}
		logger.Info("context linking enabled", "file", cfg.Linking.File)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	rateHandler := httpapi.NewRateHandler(set, linker, logger, m)

	var recorder *audit.Recorder
	if cfg.Audit.Enabled {
		backend, err := newAuditBackend(&cfg.Audit)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("configure audit backend: %w", err))
		}
		recorder = audit.NewRecorder(backend, cfg.Audit.QueueSize, logger.Slog())
		rateHandler.SetRecorder(recorder)
		logger.Info("audit trail enabled", "backend", cfg.Audit.Backend)
	}

	ctx := cli.SetupSignalHandler()

	readyCounters := make(map[string]httpapi.PoisonChecker)
	var tickers []*counter.ClockTicker
	var sweepers []*counter.Sweeper
	for name, c := range rateHandler.Counters() {
		readyCounters[name] = c

		ticker := counter.NewClockTicker(c)
		ticker.Start(ctx)
		tickers = append(tickers, ticker)

		sweeper := counter.NewSweeper(c, cfg.Counter.SweepSchedule, logger.Slog())
		sweeper.OnSweep(func(stats counter.SweepStats) {
			if m != nil {
				m.ObserveSweep(stats.BucketsDropped, stats.KeysDropped, stats.PoisonedPartitions)
			}
		})
		if err := sweeper.Start(ctx, cfg.Counter.SweepSchedule); err != nil {
			return cli.NewCommandError("run", fmt.Errorf("start sweeper for %q: %w", name, err))
		}
		sweepers = append(sweepers, sweeper)
	}

	var watcher *config.CollectionsWatcher
	if cfg.Collections.Watch && cfg.Collections.File != "" {
		watcher, err = config.NewCollectionsWatcher(cfg.Collections.File, 0, logger.Slog())
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("start collections watcher: %w", err))
		}
		go watcher.Watch(func() {
			newSet, err := loadCollections(&cfg.Collections)
			if err != nil {
				logger.Error("collections reload failed", "error", err)
				return
			}
			rateHandler.Reload(newSet, linker)
			logger.Info("collections reloaded", "count", len(newSet.Collections))
		})
		logger.Info("watching collections file", "file", cfg.Collections.File)
	}

	handlers := server.Handlers{
		Rate:   rateHandler,
		Health: httpapi.NewHealthHandler(),
		Ready:  httpapi.NewReadyHandler(readyCounters),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = promhttp.Handler()
	}

	srv := server.New(&cfg.Server, &cfg.TLS, &cfg.Metrics, handlers, logger, m)

	runErr := srv.Start(ctx)

	for _, t := range tickers {
		t.Stop()
	}
	for _, s := range sweepers {
		s.Stop()
	}
	if watcher != nil {
		_ = watcher.Stop()
	}
	if recorder != nil {
		_ = recorder.Close()
	}

	if runErr != nil {
		return cli.NewCommandError("run", runErr)
	}
	return nil
}

func toLoggingPatterns(patterns []config.RedactPattern) []logging.RedactPattern {
	out := make([]logging.RedactPattern, len(patterns))
	for i, p := range patterns {
		out[i] = logging.RedactPattern{Name: p.Name, Pattern: p.Pattern, Replacement: p.Replacement}
	}
	return out
}

func newAuditBackend(cfg *config.AuditConfig) (audit.Backend, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.NewSQLiteBackend(storage.SQLiteConfig{Path: cfg.SQLitePath})
	case "memory", "":
		return storage.NewMemoryBackend(cfg.Capacity), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Backend)
	}
}
