package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// SqliteStore keeps every document in a single SQLite database.
//
// Table:
//
//	documents(key TEXT PRIMARY KEY, data TEXT)
type SqliteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSqliteStore opens (creating if necessary) the database at dbPath.
func NewSqliteStore(dbPath string) (s *SqliteStore, err error) {
	err = os.MkdirAll(filepath.Dir(dbPath), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create data directory: %s", filepath.Dir(dbPath))
		return s, err
	}

	var db *sql.DB
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to open database: %s", dbPath)
		return s, err
	}

	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		err = errors.Wrap(err, "failed to enable WAL mode")
		return s, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		key TEXT NOT NULL PRIMARY KEY,
		data TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		err = errors.Wrap(err, "failed to create documents table")
		return s, err
	}

	s = &SqliteStore{db: db}
	return s, err
}

// Load returns the document stored under key, if any.
func (s *SqliteStore) Load(ctx context.Context, key string) (doc json.RawMessage, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err = s.db.QueryRowContext(ctx, "SELECT data FROM documents WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return doc, false, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to load document: %s", key)
		return doc, false, err
	}

	doc = json.RawMessage(raw)
	found = true
	return doc, found, err
}

// Save inserts or replaces the document stored under key.
func (s *SqliteStore) Save(ctx context.Context, key string, doc json.RawMessage) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (key, data) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		key, string(doc),
	)
	if err != nil {
		err = errors.Wrapf(err, "failed to save document: %s", key)
		return err
	}

	return err
}

// Close closes the underlying database.
func (s *SqliteStore) Close() (err error) {
	err = s.db.Close()
	return err
}
