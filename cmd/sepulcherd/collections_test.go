package main

import (
	"os"
	"path/filepath"
	"testing"

	"sepulcher/pkg/config"
)

func TestLoadCollectionsInlineOnly(t *testing.T) {
	set, err := loadCollections(&config.CollectionsConfig{Inline: "logins=5:1m", TTLSeconds: 300})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set.Collections["logins"]; !ok {
		t.Fatal("expected a logins collection")
	}
}

func TestLoadCollectionsFileOverridesInline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collections.txt")
	if err := os.WriteFile(path, []byte("logins=9:1m,signups=1:1h"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	set, err := loadCollections(&config.CollectionsConfig{
		Inline:     "logins=5:1m",
		File:       path,
		TTLSeconds: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Collections["logins"].CountLimit != 9 {
		t.Errorf("got limit %d, want file's 9 to win over inline's 5", set.Collections["logins"].CountLimit)
	}
	if _, ok := set.Collections["signups"]; !ok {
		t.Error("expected signups from the file to be present")
	}
}

func TestLoadCollectionsNoneConfigured(t *testing.T) {
	if _, err := loadCollections(&config.CollectionsConfig{}); err == nil {
		t.Fatal("expected an error when neither inline nor file is configured")
	}
}
