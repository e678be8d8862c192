// Package store persists the saved-languages collection in SQLite.
// Records are stored whole (insert-or-replace by id); there is no
// incremental diffing.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"glossa/internal/conlang"
	"glossa/internal/logging"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("language not found")

// Store is the durable collection interface the controller depends on.
type Store interface {
	// Save inserts or replaces the record by id, assigning an id on
	// first save.
	Save(c *conlang.Conlang) error

	// Delete removes the record with the given id.
	Delete(id string) error

	// Get loads one record by id.
	Get(id string) (*conlang.Conlang, error)

	// List returns all records in insertion order.
	List() ([]*conlang.Conlang, error)

	Close() error
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logging.Store("Opening language store at %s", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &SQLiteStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS languages (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts or replaces the record. New records append to the end of
// the collection; existing ones keep their position.
func (s *SQLiteStore) Save(c *conlang.Conlang) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.EnsureID()
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize language: %w", err)
	}

	var exists bool
	if err := s.db.QueryRow("SELECT COUNT(1) > 0 FROM languages WHERE id = ?", c.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existing record: %w", err)
	}

	if exists {
		if _, err := s.db.Exec(
			"UPDATE languages SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			string(data), c.ID); err != nil {
			return fmt.Errorf("failed to update language: %w", err)
		}
		logging.Store("Updated language %s (%s)", c.ID, c.Name)
		return nil
	}

	if _, err := s.db.Exec(
		"INSERT INTO languages (id, position, data) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM languages), ?)",
		c.ID, string(data)); err != nil {
		return fmt.Errorf("failed to insert language: %w", err)
	}
	logging.Store("Saved new language %s (%s)", c.ID, c.Name)
	return nil
}

// Delete removes a record by id.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM languages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	logging.Store("Deleted language %s", id)
	return nil
}

// Get loads one record by id.
func (s *SQLiteStore) Get(id string) (*conlang.Conlang, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRow("SELECT data FROM languages WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load language: %w", err)
	}

	var c conlang.Conlang
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("stored language %s is corrupted: %w", id, err)
	}
	return &c, nil
}

// List returns all records in insertion order. A corrupted row is
// skipped with a warning rather than failing the whole collection.
func (s *SQLiteStore) List() ([]*conlang.Conlang, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, data FROM languages ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	var out []*conlang.Conlang
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var c conlang.Conlang
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			logging.Get(logging.CategoryStore).Warn("Skipping corrupted record %s: %v", id, err)
			continue
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate languages: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
