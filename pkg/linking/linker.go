package linking

import "encoding/json"

// Link describes one collection's linked-context rate decision: the other
// collections whose totals should be summed alongside this one, and the
// count those combined totals are checked against.
type Link struct {
	Contexts []string
	Rate     uint64
}

// ContextLinker holds every collection's Link plus the TTL each
// collection's own counter should be constructed with.
type ContextLinker struct {
	contexts map[string]Link
	ttls     map[string]uint64
}

type linkerConfig struct {
	Linkers     []linkerEntry `json:"linkers"`
	SweepSeconds uint64       `json:"sweep_seconds"`
}

type linkerEntry struct {
	Name     string   `json:"name"`
	Contexts []string `json:"contexts"`
	Rate     struct {
		Count      uint64 `json:"count"`
		TTLSeconds uint64 `json:"ttl_seconds"`
	} `json:"rate"`
}

// New parses a JSON document of the form:
//
//	{
//	  "linkers": [
//	    {"name": "foo", "contexts": ["bar"], "rate": {"count": 2, "ttl_seconds": 60}}
//	  ],
//	  "sweep_seconds": 30
//	}
func New(raw string) (*ContextLinker, error) {
	var cfg linkerConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, err
	}

	linker := &ContextLinker{
		contexts: make(map[string]Link, len(cfg.Linkers)),
		ttls:     make(map[string]uint64, len(cfg.Linkers)),
	}

	for _, entry := range cfg.Linkers {
		linker.contexts[entry.Name] = Link{
			Contexts: entry.Contexts,
			Rate:     entry.Rate.Count,
		}
		linker.ttls[entry.Name] = entry.Rate.TTLSeconds
	}

	return linker, nil
}

// GetContext returns the Link configured for a collection, if any.
func (c *ContextLinker) GetContext(name string) (Link, bool) {
	l, ok := c.contexts[name]
	return l, ok
}

// GetTTLs returns every collection's configured counter TTL, used to build
// one ShardedCounter per collection at startup.
func (c *ContextLinker) GetTTLs() map[string]uint64 {
	return c.ttls
}
