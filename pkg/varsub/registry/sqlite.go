package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrStoreClosed is returned by store operations after Close.
var ErrStoreClosed = errors.New("store closed")

// SQLiteStore persists variable values to SQLite.
// It is suitable for single-process production use.
//
// Variable lookups are lazy: the store claims every name and queries the
// database when the variable is resolved, so SQLiteStore should be the
// last source in a Multi composition.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Source = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) a variable store at path.
// The path should be a file path (e.g., "./vars.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS variables (
			name  TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put stores value under name, replacing any previous value.
func (s *SQLiteStore) Put(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variables (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("put variable %q: %w", name, err)
	}
	return nil
}

// Delete removes name from the store. Deleting an absent name is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM variables WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete variable %q: %w", name, err)
	}
	return nil
}

// Names returns all stored variable names in lexical order.
func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM variables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan variable name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	return names, nil
}

// Variable implements Source. The returned variable queries the database
// on Resolve; a missing row is "no value", a query error is a lookup failure.
func (s *SQLiteStore) Variable(name string) (Variable, bool) {
	return VariableFunc(func(ctx context.Context) (string, bool, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		if s.closed {
			return "", false, ErrStoreClosed
		}

		var value string
		err := s.db.QueryRowContext(ctx, `SELECT value FROM variables WHERE name = ?`, name).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("query variable %q: %w", name, err)
		}
		return value, true, nil
	}), true
}

// Close closes the store. Further operations return ErrStoreClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
