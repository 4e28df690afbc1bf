package config

import "testing"

func validConfig() *Config {
	cfg := &Config{
		Collections: CollectionsConfig{Inline: "logins=5:1m", TTLSeconds: 300},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidateAcceptsDefaultedConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsZeroPartitions(t *testing.T) {
	cfg := validConfig()
	cfg.Counter.Partitions = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected an error for zero partitions")
	}
}

func TestValidateRejectsTTLBelowWindow(t *testing.T) {
	cfg := validConfig()
	cfg.Counter.WindowSeconds = 120
	cfg.Counter.TTLSeconds = 60

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected an error when ttl_seconds < window_seconds")
	}
}

func TestValidateRejectsTLSWithoutFiles(t *testing.T) {
	cfg := validConfig()
	cfg.TLS.Enabled = true

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected an error for TLS enabled without cert/key files")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("got error type %T, want ValidationError", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("got %d errors, want 2 (cert_file and key_file)", len(ve.Errors))
	}
}

func TestValidateRejectsSQLiteAuditWithoutPath(t *testing.T) {
	cfg := validConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.Backend = "sqlite"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected an error for sqlite audit backend without sqlite_path")
	}
}
