// Package store defines the document persistence boundary and its backends.
//
// Documents are stored whole under fixed string keys. There are no partial
// updates at this layer: Save always replaces whatever was stored before.
package store

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store is the interface all persistence backends implement.
type Store interface {
	// Load returns the raw document stored under key. The found flag
	// distinguishes an absent document from an empty one; callers apply
	// their own defaults when found is false.
	Load(ctx context.Context, key string) (doc json.RawMessage, found bool, err error)

	// Save inserts or fully replaces the document stored under key.
	Save(ctx context.Context, key string, doc json.RawMessage) (err error)

	// Close releases any resources held by the backend.
	Close() (err error)
}

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"sqlite" - SQLite database at dataDir/folio.db (default)
//	"json"   - one JSON file per key in dataDir
//	"memory" - in-memory (ephemeral, for testing)
func New(backend, dataDir string) (s Store, err error) {
	switch backend {
	case "sqlite", "":
		s, err = NewSqliteStore(filepath.Join(dataDir, "folio.db"))
		return s, err
	case "json":
		s, err = NewJSONFileStore(dataDir)
		return s, err
	case "memory":
		s = NewMemoryStore()
		return s, err
	default:
		err = errors.Errorf("unknown store backend: %q (supported: sqlite, json, memory)", backend)
		return s, err
	}
}
