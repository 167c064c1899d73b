// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     history
// Description: SQLite-backed record of processed utterances
// License:     MIT
// ============================================================================

package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one processed utterance.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Spanish    string
	English    string
	Final      string
	Enhanced   bool
	DurationMs int64
}

// Store persists utterance history in SQLite with a bounded entry count.
type Store struct {
	db         *sql.DB
	maxEntries int
}

const schema = `
CREATE TABLE IF NOT EXISTS utterances (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMP NOT NULL,
	spanish     TEXT NOT NULL,
	english     TEXT NOT NULL,
	final       TEXT NOT NULL,
	enhanced    INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_utterances_created ON utterances(created_at);
`

// Open creates or opens the history database.
func Open(path string, maxEntries int) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Add records an utterance and trims the table to the retention cap.
func (s *Store) Add(e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO utterances (id, created_at, spanish, english, final, enhanced, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt, e.Spanish, e.English, e.Final, e.Enhanced, e.DurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM utterances WHERE id NOT IN (
			SELECT id FROM utterances ORDER BY created_at DESC LIMIT ?
		)`,
		s.maxEntries,
	)
	if err != nil {
		return "", fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit history entry: %w", err)
	}
	return e.ID, nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.maxEntries {
		limit = s.maxEntries
	}

	rows, err := s.db.Query(
		`SELECT id, created_at, spanish, english, final, enhanced, duration_ms
		 FROM utterances ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Spanish, &e.English, &e.Final, &e.Enhanced, &e.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM utterances`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM utterances`)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
