package config

import "time"

// Config is sepulcherd's full configuration, as loaded from YAML.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Counter     CounterConfig     `yaml:"counter"`
	Collections CollectionsConfig `yaml:"collections"`
	Linking     LinkingConfig     `yaml:"linking"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	TLS         TLSConfig         `yaml:"tls"`
	Audit       AuditConfig       `yaml:"audit"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CounterConfig holds counter settings. sepulcherd run reads only
// SweepSchedule from it, for every counter's Sweeper. Partitions,
// TTLSeconds and WindowSeconds are defaulted and validated but do not reach
// the counters, which are built with the default partition count,
// collections.ttl_seconds, and each collection's own window.
type CounterConfig struct {
	Partitions    uint32 `yaml:"partitions"`
	TTLSeconds    uint64 `yaml:"ttl_seconds"`
	WindowSeconds uint64 `yaml:"window_seconds"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

// CollectionsConfig describes where collection rate definitions come from:
// an inline "name=count:window,..." string, a file holding the same syntax,
// or both (the file is merged over Inline; with Watch set it is read again
// whenever it changes).
type CollectionsConfig struct {
	Inline     string `yaml:"inline"`
	File       string `yaml:"file"`
	Watch      bool   `yaml:"watch"`
	TTLSeconds uint64 `yaml:"ttl_seconds"`
}

// LinkingConfig controls the optional context-linking feature.
type LinkingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// LoggingConfig controls structured logging and PII redaction.
type LoggingConfig struct {
	Level          string          `yaml:"level"`
	Format         string          `yaml:"format"`
	AddSource      bool            `yaml:"add_source"`
	RedactPII      bool            `yaml:"redact_pii"`
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern is one custom PII pattern applied in addition to the
// built-in ones.
type RedactPattern struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TLSConfig controls whether the HTTP server terminates TLS itself.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// AuditConfig controls the optional decision-audit trail.
type AuditConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Backend    string        `yaml:"backend"` // "memory" or "sqlite"
	SQLitePath string        `yaml:"sqlite_path"`
	QueueSize  int           `yaml:"queue_size"`
	Capacity   int           `yaml:"capacity"` // memory backend ring buffer size
	Retention  time.Duration `yaml:"retention"`
	PruneEvery time.Duration `yaml:"prune_every"`
}
