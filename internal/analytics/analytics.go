// Package analytics records anonymous usage events in a local SQLite
// database.
package analytics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Event types recorded by the apps.
const (
	EventSearch          = "SEARCH"
	EventManuscriptCheck = "MANUSCRIPT_CHECK"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT NOT NULL,
    details    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
`

// Store persists usage events.
type Store struct {
	db     *sql.DB
	logger *zerolog.Logger
}

// New opens (and migrates) the analytics database at path.
func New(path string, logger *zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open analytics database")
	}
	// SQLite files tolerate a single writer.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "could not reach analytics database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, errors.Wrap(err, "could not migrate analytics database")
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one event. Failures are logged, never surfaced, so
// analytics can never break a user-facing request.
func (s *Store) Record(ctx context.Context, eventType, details string) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (event_type, details) VALUES (?, ?)",
		eventType, sanitize(details),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("could not record analytics event")
	}
}

// Summary returns event counts grouped by type.
func (s *Store) Summary(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT event_type, COUNT(*) FROM events GROUP BY event_type")
	if err != nil {
		return nil, errors.Wrap(err, "could not summarize analytics events")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, errors.Wrap(err, "could not scan analytics row")
		}
		counts[eventType] = count
	}
	return counts, rows.Err()
}

// Recent returns the newest events, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]EventRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT event_type, details, created_at FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, errors.Wrap(err, "could not list analytics events")
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.Type, &e.Details, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "could not scan analytics row")
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventRecord is one stored usage event.
type EventRecord struct {
	Type      string    `json:"event_type"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// sanitize keeps event details single-line and delimiter-safe.
func sanitize(details string) string {
	details = strings.ReplaceAll(details, ",", ";")
	details = strings.ReplaceAll(details, "\n", " ")
	return details
}
