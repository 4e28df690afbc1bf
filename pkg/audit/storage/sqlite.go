package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"sepulcher/pkg/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	collection TEXT NOT NULL,
	key TEXT NOT NULL,
	allowed INTEGER NOT NULL,
	total INTEGER NOT NULL,
	rate_limit INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_collection ON decisions(collection, timestamp DESC);
`

// SQLiteBackend persists Decisions to a SQLite database, so audit history
// survives a restart. Suitable for single-instance deployments only: SQLite
// allows a single writer at a time.
type SQLiteBackend struct {
	db *sql.DB
}

// SQLiteConfig configures a SQLiteBackend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string
	// BusyTimeout bounds how long a write waits for the database lock.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// NewSQLiteBackend opens (creating if necessary) a WAL-mode SQLite database
// at cfg.Path and ensures its schema exists.
func NewSQLiteBackend(cfg SQLiteConfig) (*SQLiteBackend, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Save(d audit.Decision) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO decisions (id, collection, key, allowed, total, rate_limit, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), d.Collection, d.Key, boolToInt(d.Allowed), d.Total, d.Limit, d.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) List(collection string, limit int) ([]audit.Decision, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, collection, key, allowed, total, rate_limit, timestamp FROM decisions`
	args := []any{}
	if collection != "" {
		query += ` WHERE collection = ?`
		args = append(args, collection)
	}
	query += ` ORDER BY timestamp DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []audit.Decision
	for rows.Next() {
		var (
			d         audit.Decision
			idStr     string
			allowed   int
			timestamp int64
		)
		if err := rows.Scan(&idStr, &d.Collection, &d.Key, &allowed, &d.Total, &d.Limit, &timestamp); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if id, err := uuid.Parse(idStr); err == nil {
			d.ID = id
		}
		d.Allowed = allowed != 0
		d.Timestamp = time.Unix(timestamp, 0).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteBackend) Prune(olderThan time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM decisions WHERE timestamp < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune decisions: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
