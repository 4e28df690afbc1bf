package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format is the output format for logs.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// RedactPattern is a custom PII pattern, loaded from service configuration
// in addition to the built-in patterns in redactor.go.
type RedactPattern struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Config controls a Logger's behavior.
type Config struct {
	Level          string
	Format         string
	AddSource      bool
	RedactPII      bool
	RedactPatterns []RedactPattern
	Writer         io.Writer
}

// Logger wraps slog.Logger with optional PII redaction applied to logged
// field values before they reach the underlying handler.
type Logger struct {
	slog     *slog.Logger
	redactor *Redactor
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	var redactor *Redactor
	if cfg.RedactPII {
		redactor = NewRedactor(cfg.RedactPatterns)
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return &Logger{slog: slog.New(handler), redactor: redactor}, nil
}

func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(context.Background(), slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(context.Background(), slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), slog.LevelError, msg, args...) }

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.slog.Enabled(ctx, level) {
		return
	}
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}
	l.slog.Log(ctx, level, msg, args...)
}

// With returns a Logger with additional fields attached to every subsequent
// record.
func (l *Logger) With(args ...any) *Logger {
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}
	return &Logger{slog: l.slog.With(args...), redactor: l.redactor}
}

// Slog exposes the underlying *slog.Logger for code that needs to pass a
// plain slog.Logger to a third-party library (e.g. cron's error handling).
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

func parseFormat(s string) (Format, error) {
	switch s {
	case "json", "JSON", "":
		return FormatJSON, nil
	case "text", "TEXT":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format: %s", s)
	}
}
