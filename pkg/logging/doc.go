// Package logging wraps log/slog with PII redaction and the service's
// standard level/format configuration. Rate-limit keys are frequently
// emails, IP addresses, or account identifiers supplied directly by
// clients, so redacting them before they reach a log sink is a genuine
// concern here, not just an inherited habit.
package logging
