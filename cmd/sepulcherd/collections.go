package main

import (
	"fmt"
	"os"
	"strings"

	"sepulcher/pkg/collections"
	"sepulcher/pkg/config"
)

// loadCollections resolves a CollectionsConfig into a Set. When both Inline
// and File are set, the file is parsed over the inline definition and its
// entries win on name collisions, matching CollectionsConfig's own doc
// comment ("the file is merged over Inline").
func loadCollections(cfg *config.CollectionsConfig) (*collections.Set, error) {
	if cfg.Inline == "" && cfg.File == "" {
		return nil, fmt.Errorf("no collections configured: set collections.inline or collections.file")
	}

	set := &collections.Set{
		Collections: make(map[string]collections.Collection),
		TTLSeconds:  cfg.TTLSeconds,
	}

	if cfg.Inline != "" {
		inline, err := collections.Parse(cfg.Inline, cfg.TTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("parse inline collections: %w", err)
		}
		for name, c := range inline.Collections {
			set.Collections[name] = c
		}
	}

	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("read collections file %q: %w", cfg.File, err)
		}
		raw := strings.TrimSpace(string(data))
		if raw != "" {
			fromFile, err := collections.Parse(raw, cfg.TTLSeconds)
			if err != nil {
				return nil, fmt.Errorf("parse collections file %q: %w", cfg.File, err)
			}
			for name, c := range fromFile.Collections {
				set.Collections[name] = c
			}
		}
	}

	if len(set.Collections) == 0 {
		return nil, fmt.Errorf("collections configuration produced no entries")
	}

	return set, nil
}
