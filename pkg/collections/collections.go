package collections

import (
	"strconv"
	"strings"
	"time"
)

const (
	nameSeparator     = "="
	windowSeparator   = ":"
	collectionSeparator = ","
)

// Collection is a single parsed rate configuration: a name, the maximum
// count allowed within Window.
type Collection struct {
	Name       string
	CountLimit uint64
	Window     time.Duration
}

// Set is every collection recognized by a running service, plus the global
// TTL applied to all of their counters.
type Set struct {
	Collections map[string]Collection
	TTLSeconds  uint64
}

// Parse reads the comma-separated "name=count:duration" configuration
// string into a Set. ttlSeconds is applied uniformly to every collection in
// the resulting Set, since the wire format has no per-collection TTL.
func Parse(raw string, ttlSeconds uint64) (*Set, error) {
	entries := strings.Split(raw, collectionSeparator)

	set := &Set{
		Collections: make(map[string]Collection, len(entries)),
		TTLSeconds:  ttlSeconds,
	}

	for _, entry := range entries {
		c, err := parseCollection(entry)
		if err != nil {
			return nil, err
		}
		set.Collections[c.Name] = c
	}

	return set, nil
}

func parseCollection(entry string) (Collection, error) {
	nameAndRate := strings.Split(entry, nameSeparator)
	if len(nameAndRate) == 0 {
		return Collection{}, &ParseError{Message: "no rate config found"}
	}

	rate := nameAndRate[len(nameAndRate)-1]
	nameAndRate = nameAndRate[:len(nameAndRate)-1]
	if len(nameAndRate) == 0 {
		return Collection{}, &ParseError{Message: "no name in rate"}
	}
	name := nameAndRate[len(nameAndRate)-1]

	countAndWindow := strings.Split(rate, windowSeparator)
	if len(countAndWindow) == 0 {
		return Collection{}, &ParseError{Message: "no window in rate"}
	}

	windowRaw := countAndWindow[len(countAndWindow)-1]
	countAndWindow = countAndWindow[:len(countAndWindow)-1]
	if len(countAndWindow) == 0 {
		return Collection{}, &ParseError{Message: "no count in rate"}
	}
	countRaw := countAndWindow[len(countAndWindow)-1]

	window, err := parseWindow(windowRaw)
	if err != nil {
		return Collection{}, &ParseError{Message: "parse window: " + err.Error()}
	}

	count, err := strconv.ParseUint(countRaw, 10, 64)
	if err != nil {
		return Collection{}, &ParseError{Message: "parse rate count: " + err.Error()}
	}

	return Collection{Name: name, CountLimit: count, Window: window}, nil
}

// ParseError reports a malformed collection-rate entry, named after the
// stage of parsing that failed, matching the original cache's own
// configuration error taxonomy.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
