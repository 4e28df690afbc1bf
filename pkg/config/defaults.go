package config

import (
	"time"

	"sepulcher/pkg/counter"
)

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 5 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// Counter defaults, mirrored from pkg/counter's own zero-value defaults
	// so a config.Config printed for a user shows the values actually in
	// effect rather than zeroes.
	DefaultPartitions    = counter.DefaultPartitions
	DefaultTTLSeconds    = counter.DefaultTTLSecs
	DefaultWindowSeconds = counter.DefaultWindowSecs
	DefaultSweepSchedule = "@every 1m"

	// Collections defaults
	DefaultCollectionsTTLSeconds = counter.DefaultTTLSecs

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	// Metrics defaults
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"

	// Audit defaults
	DefaultAuditBackend    = "memory"
	DefaultAuditQueueSize  = 1024
	DefaultAuditCapacity   = 10000
	DefaultAuditRetention  = 7 * 24 * time.Hour
	DefaultAuditPruneEvery = time.Hour
)

// ApplyDefaults fills in zero-valued fields of cfg with the defaults above.
// It never overwrites a value the caller (or the YAML file) already set.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Counter.Partitions == 0 {
		cfg.Counter.Partitions = DefaultPartitions
	}
	if cfg.Counter.TTLSeconds == 0 {
		cfg.Counter.TTLSeconds = DefaultTTLSeconds
	}
	if cfg.Counter.WindowSeconds == 0 {
		cfg.Counter.WindowSeconds = DefaultWindowSeconds
	}
	if cfg.Counter.SweepSchedule == "" {
		cfg.Counter.SweepSchedule = DefaultSweepSchedule
	}

	if cfg.Collections.TTLSeconds == 0 {
		cfg.Collections.TTLSeconds = DefaultCollectionsTTLSeconds
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if !cfg.Metrics.Enabled {
		// Enabled defaults true; a user who wants metrics off sets the
		// field explicitly and also changes the path, to distinguish
		// "unset" from "off".
		if cfg.Metrics.Path == "" {
			cfg.Metrics.Enabled = DefaultMetricsEnabled
		}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.Backend == "" {
			cfg.Audit.Backend = DefaultAuditBackend
		}
		if cfg.Audit.QueueSize == 0 {
			cfg.Audit.QueueSize = DefaultAuditQueueSize
		}
		if cfg.Audit.Capacity == 0 {
			cfg.Audit.Capacity = DefaultAuditCapacity
		}
		if cfg.Audit.Retention == 0 {
			cfg.Audit.Retention = DefaultAuditRetention
		}
		if cfg.Audit.PruneEvery == 0 {
			cfg.Audit.PruneEvery = DefaultAuditPruneEvery
		}
	}
}
