package storage

import (
	"testing"

	"sepulcher/pkg/audit"
)

func TestMemoryBackendSaveAndList(t *testing.T) {
	b := NewMemoryBackend(3)

	for i := 0; i < 5; i++ {
		d := audit.NewDecision("logins", "user-1", true, uint64(i), 10)
		if err := b.Save(d); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	out, err := b.List("logins", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d entries, want 3 (capacity-bounded)", len(out))
	}
	// Newest first: the last three saves had Total 2, 3, 4.
	if out[0].Total != 4 || out[1].Total != 3 || out[2].Total != 2 {
		t.Errorf("unexpected order: %+v", out)
	}
}

func TestMemoryBackendFiltersByCollection(t *testing.T) {
	b := NewMemoryBackend(10)
	b.Save(audit.NewDecision("logins", "k", true, 1, 10))
	b.Save(audit.NewDecision("signups", "k", true, 1, 10))

	out, err := b.List("signups", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Collection != "signups" {
		t.Fatalf("got %+v, want one signups decision", out)
	}
}
