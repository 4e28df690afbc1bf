package audit

import (
	"time"

	"github.com/google/uuid"
)

// Decision is one rate-limit check's outcome, recorded for later
// inspection. It is produced on the hot path but never blocks it: callers
// hand a Decision to a Recorder's fire-and-forget Record method.
type Decision struct {
	ID         uuid.UUID `json:"id"`
	Collection string    `json:"collection"`
	Key        string    `json:"key"`
	Allowed    bool      `json:"allowed"`
	Total      uint64    `json:"total"`
	Limit      uint64    `json:"limit"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewDecision stamps a Decision with a fresh ID and the current time.
func NewDecision(collection, key string, allowed bool, total, limit uint64) Decision {
	return Decision{
		ID:         uuid.New(),
		Collection: collection,
		Key:        key,
		Allowed:    allowed,
		Total:      total,
		Limit:      limit,
		Timestamp:  time.Now(),
	}
}

// Backend persists Decisions and answers queries over them. Implementations
// must be safe for concurrent use.
type Backend interface {
	Save(d Decision) error
	List(collection string, limit int) ([]Decision, error)
	Prune(olderThan time.Time) (int, error)
	Close() error
}
