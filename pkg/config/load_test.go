package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
collections:
  inline: "logins=5:1m"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("got listen address %q, want default %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Counter.Partitions != DefaultPartitions {
		t.Errorf("got partitions %d, want default %d", cfg.Counter.Partitions, DefaultPartitions)
	}
	if cfg.Logging.Level != DefaultLoggingLevel {
		t.Errorf("got log level %q, want default %q", cfg.Logging.Level, DefaultLoggingLevel)
	}
}

func TestLoadConfigRejectsMissingCollections(t *testing.T) {
	path := writeTempConfig(t, `
server:
  listen_address: "127.0.0.1:9000"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error when no collections are configured")
	}
}

func TestLoadConfigRejectsMalformedInline(t *testing.T) {
	path := writeTempConfig(t, `
collections:
  inline: "not-a-valid-rate"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a malformed inline collections string")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
collections:
  inline: "logins=5:1m"
`)

	t.Setenv("SEPULCHER_SERVER_LISTEN_ADDRESS", "0.0.0.0:9999")
	t.Setenv("SEPULCHER_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9999" {
		t.Errorf("got listen address %q, want env override", cfg.Server.ListenAddress)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("got log level %q, want env override", cfg.Logging.Level)
	}
}
