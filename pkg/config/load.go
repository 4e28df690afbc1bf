package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file, applies
// environment variable overrides (SEPULCHER_SECTION_FIELD), and re-validates.
// Environment variables always take precedence over file-based values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SEPULCHER_SERVER_LISTEN_ADDRESS"); v != "" {
		cfg.Server.ListenAddress = v
	}
	if v := os.Getenv("SEPULCHER_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("SEPULCHER_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	if v := os.Getenv("SEPULCHER_COUNTER_PARTITIONS"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Counter.Partitions = uint32(i)
		}
	}
	if v := os.Getenv("SEPULCHER_COUNTER_TTL_SECONDS"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Counter.TTLSeconds = i
		}
	}
	if v := os.Getenv("SEPULCHER_COUNTER_WINDOW_SECONDS"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Counter.WindowSeconds = i
		}
	}
	if v := os.Getenv("SEPULCHER_COUNTER_SWEEP_SCHEDULE"); v != "" {
		cfg.Counter.SweepSchedule = v
	}

	if v := os.Getenv("SEPULCHER_COLLECTIONS_INLINE"); v != "" {
		cfg.Collections.Inline = v
	}
	if v := os.Getenv("SEPULCHER_COLLECTIONS_FILE"); v != "" {
		cfg.Collections.File = v
	}

	if v := os.Getenv("SEPULCHER_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SEPULCHER_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SEPULCHER_LOGGING_REDACT_PII"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.RedactPII = b
		}
	}

	if v := os.Getenv("SEPULCHER_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}

	if v := os.Getenv("SEPULCHER_TLS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TLS.Enabled = b
		}
	}
	if v := os.Getenv("SEPULCHER_TLS_CERT_FILE"); v != "" {
		cfg.TLS.CertFile = v
	}
	if v := os.Getenv("SEPULCHER_TLS_KEY_FILE"); v != "" {
		cfg.TLS.KeyFile = v
	}

	if v := os.Getenv("SEPULCHER_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if v := os.Getenv("SEPULCHER_AUDIT_BACKEND"); v != "" {
		cfg.Audit.Backend = v
	}
	if v := os.Getenv("SEPULCHER_AUDIT_SQLITE_PATH"); v != "" {
		cfg.Audit.SQLitePath = v
	}
}
