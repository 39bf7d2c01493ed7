// Package history persists received notifications to a local SQLite
// database so they can be reviewed after the tray is closed.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidEntry indicates a malformed entry.
	ErrInvalidEntry = errors.New("invalid history entry")
)

// Entry is one received notification.
type Entry struct {
	ID            string
	Kind          string
	SubjectName   string
	SubjectUserID string
	Message       string
	CreatedAt     time.Time
}

// Store is the history storage interface.
type Store interface {
	// Add appends an entry, pruning the oldest rows beyond the cap.
	Add(entry Entry) error
	// List returns entries newest-first, optionally filtered by kind.
	// A non-positive limit returns everything.
	List(kind string, limit int) ([]Entry, error)
	// Clear removes all entries.
	Clear() error
	// Close releases the underlying database.
	Close() error
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	subject_name TEXT NOT NULL DEFAULT '',
	subject_user_id TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_kind ON notifications(kind);
`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db         *sql.DB
	maxEntries int
}

// NewSQLiteStore opens (creating if needed) a history database at dbPath.
// maxEntries caps the table size; older rows are pruned on insert.
func NewSQLiteStore(dbPath string, maxEntries int) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("history: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("history: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	store := &SQLiteStore{db: db, maxEntries: maxEntries}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add appends an entry.
func (s *SQLiteStore) Add(entry Entry) error {
	if entry.ID == "" || entry.Kind == "" {
		return ErrInvalidEntry
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO notifications (id, kind, subject_name, subject_user_id, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Kind, entry.SubjectName, entry.SubjectUserID, entry.Message,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return s.prune()
}

// prune removes the oldest rows beyond maxEntries.
func (s *SQLiteStore) prune() error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.db.Exec(
		`DELETE FROM notifications WHERE id NOT IN (
			SELECT id FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("history: prune: %w", err)
	}
	return nil
}

// List returns entries newest-first.
func (s *SQLiteStore) List(kind string, limit int) ([]Entry, error) {
	query := `SELECT id, kind, subject_name, subject_user_id, message, created_at
		FROM notifications`
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Kind, &e.SubjectName, &e.SubjectUserID, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all entries.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM notifications"); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

// NopStore discards everything. Used when history is disabled.
type NopStore struct{}

func (NopStore) Add(Entry) error { return nil }

func (NopStore) List(string, int) ([]Entry, error) { return nil, nil }

func (NopStore) Clear() error { return nil }

func (NopStore) Close() error { return nil }
