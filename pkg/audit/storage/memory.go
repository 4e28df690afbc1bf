package storage

import (
	"sync"
	"time"

	"sepulcher/pkg/audit"
)

// MemoryBackend keeps the most recent decisions in a fixed-size ring
// buffer. It is the default backend: fast, and good enough for
// inspecting recent activity, but nothing survives a restart.
type MemoryBackend struct {
	mu       sync.RWMutex
	entries  []audit.Decision
	capacity int
	next     int
	full     bool
}

// NewMemoryBackend returns a ring-buffer backend holding up to capacity
// decisions. Once full, the oldest decision is overwritten on each Save.
func NewMemoryBackend(capacity int) *MemoryBackend {
	if capacity <= 0 {
		capacity = 10000
	}
	return &MemoryBackend{
		entries:  make([]audit.Decision, capacity),
		capacity: capacity,
	}
}

func (m *MemoryBackend) Save(d audit.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = d
	m.next = (m.next + 1) % m.capacity
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// List returns up to limit of the most recent decisions for collection, in
// newest-first order. limit <= 0 means no bound.
func (m *MemoryBackend) List(collection string, limit int) ([]audit.Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.next
	count := n
	if m.full {
		count = m.capacity
	}

	var out []audit.Decision
	for i := 0; i < count; i++ {
		idx := (n - 1 - i + m.capacity) % m.capacity
		d := m.entries[idx]
		if collection != "" && d.Collection != collection {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Prune is a no-op for MemoryBackend: the ring buffer already bounds
// memory use by capacity rather than by age.
func (m *MemoryBackend) Prune(olderThan time.Time) (int, error) {
	return 0, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
