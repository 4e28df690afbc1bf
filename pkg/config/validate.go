package config

import (
	"fmt"
	"strings"

	"sepulcher/pkg/collections"
)

// FieldError is a validation error for a specific configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found while validating a
// Config, so a user sees all problems at once instead of one per run.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks cfg against every rule this package enforces, returning a
// ValidationError aggregating all violations, or nil if cfg is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateCounter(&cfg.Counter)...)
	errs = append(errs, validateCollections(&cfg.Collections)...)
	errs = append(errs, validateLinking(&cfg.Linking)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateTLS(&cfg.TLS)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(c *ServerConfig) []FieldError {
	var errs []FieldError
	if c.ListenAddress == "" {
		errs = append(errs, FieldError{"server.listen_address", "field is required"})
	}
	if c.ReadTimeout < 0 {
		errs = append(errs, FieldError{"server.read_timeout", "must not be negative"})
	}
	if c.WriteTimeout < 0 {
		errs = append(errs, FieldError{"server.write_timeout", "must not be negative"})
	}
	return errs
}

func validateCounter(c *CounterConfig) []FieldError {
	var errs []FieldError
	if c.Partitions == 0 {
		errs = append(errs, FieldError{"counter.partitions", "must be greater than zero"})
	}
	if c.WindowSeconds == 0 {
		errs = append(errs, FieldError{"counter.window_seconds", "must be greater than zero"})
	}
	if c.TTLSeconds < c.WindowSeconds {
		errs = append(errs, FieldError{"counter.ttl_seconds", "must be at least window_seconds, or expired buckets would out-live their own window"})
	}
	return errs
}

func validateCollections(c *CollectionsConfig) []FieldError {
	var errs []FieldError
	if c.Inline == "" && c.File == "" {
		errs = append(errs, FieldError{"collections", "at least one of inline or file must be set"})
		return errs
	}
	if c.Inline != "" {
		if _, err := collections.Parse(c.Inline, c.TTLSeconds); err != nil {
			errs = append(errs, FieldError{"collections.inline", err.Error()})
		}
	}
	return errs
}

func validateLinking(c *LinkingConfig) []FieldError {
	var errs []FieldError
	if c.Enabled && c.File == "" {
		errs = append(errs, FieldError{"linking.file", "field is required when linking.enabled is true"})
	}
	return errs
}

func validateLogging(c *LoggingConfig) []FieldError {
	var errs []FieldError
	switch c.Level {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, FieldError{"logging.level", "must be one of debug, info, warn, error"})
	}
	switch c.Format {
	case "json", "text", "":
	default:
		errs = append(errs, FieldError{"logging.format", "must be one of json, text"})
	}
	return errs
}

func validateTLS(c *TLSConfig) []FieldError {
	var errs []FieldError
	if c.Enabled {
		if c.CertFile == "" {
			errs = append(errs, FieldError{"tls.cert_file", "field is required when tls.enabled is true"})
		}
		if c.KeyFile == "" {
			errs = append(errs, FieldError{"tls.key_file", "field is required when tls.enabled is true"})
		}
	}
	return errs
}

func validateAudit(c *AuditConfig) []FieldError {
	var errs []FieldError
	if !c.Enabled {
		return errs
	}
	switch c.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{"audit.backend", "must be one of memory, sqlite"})
	}
	if c.Backend == "sqlite" && c.SQLitePath == "" {
		errs = append(errs, FieldError{"audit.sqlite_path", "field is required when audit.backend is sqlite"})
	}
	return errs
}
