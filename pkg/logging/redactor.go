package logging

import (
	"regexp"
	"strings"
)

// Redactor scrubs PII from log field values: the kind of thing that shows
// up as a rate-limit key (emails, IPs) or an incidentally-logged value
// (tokens, secrets).
type Redactor struct {
	patterns map[string]*redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

const (
	PatternEmail = "email"
	PatternIPv4  = "ipv4"
	PatternIPv6  = "ipv6"
)

// NewRedactor builds a Redactor with the built-in patterns plus any custom
// ones from configuration. An invalid custom pattern is skipped rather than
// failing construction, since one bad pattern shouldn't take logging down.
func NewRedactor(custom []RedactPattern) *Redactor {
	r := &Redactor{patterns: make(map[string]*redactPattern)}
	r.addDefaultPatterns()

	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns[p.Name] = &redactPattern{regex: regex, replacement: p.Replacement}
	}

	return r
}

func (r *Redactor) addDefaultPatterns() {
	defaults := map[string]redactPattern{
		PatternEmail: {
			regex:       regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
			replacement: "[email_redacted]",
		},
		PatternIPv4: {
			regex:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			replacement: "*.*.*.*",
		},
		PatternIPv6: {
			regex:       regexp.MustCompile(`\b(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}\b`),
			replacement: "****:****:****:****:****:****:****:****",
		},
	}

	for name, p := range defaults {
		p := p
		r.patterns[name] = &p
	}
}

// RedactString applies every configured pattern to value in turn.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	redacted := value
	for _, p := range r.patterns {
		redacted = p.regex.ReplaceAllString(redacted, p.replacement)
	}
	return redacted
}

// RedactArgs redacts slog-style key/value pairs (key1, value1, key2, ...):
// values under a sensitive-looking key are fully masked, and string values
// under any key are scanned for PII patterns.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		key, ok := redacted[i-1].(string)
		if ok && isSensitiveKey(key) {
			redacted[i] = redactValue(redacted[i])
			continue
		}
		if str, ok := redacted[i].(string); ok {
			redacted[i] = r.RedactString(str)
		}
	}

	return redacted
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range []string{"password", "secret", "token", "api_key", "apikey", "authorization"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func redactValue(value any) any {
	s, ok := value.(string)
	if !ok {
		return "***"
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:4] + "***"
}
