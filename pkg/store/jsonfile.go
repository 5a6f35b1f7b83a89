package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// JSONFileStore keeps one pretty-printed JSON file per document key.
type JSONFileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewJSONFileStore creates a store rooted at dir, creating it if absent.
func NewJSONFileStore(dir string) (s *JSONFileStore, err error) {
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create store directory: %s", dir)
		return s, err
	}

	s = &JSONFileStore{dir: dir}
	return s, err
}

func (s *JSONFileStore) path(key string) (path string) {
	path = filepath.Join(s.dir, key+".json")
	return path
}

// Load returns the document stored under key, if any.
func (s *JSONFileStore) Load(_ context.Context, key string) (doc json.RawMessage, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	data, err = os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		err = nil
		return doc, false, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read document file: %s", s.path(key))
		return doc, false, err
	}

	doc = json.RawMessage(data)
	found = true
	return doc, found, err
}

// Save writes the document under key, replacing any previous content.
// The write goes through a temp file and rename so readers never observe
// a half-written document.
func (s *JSONFileStore) Save(_ context.Context, key string, doc json.RawMessage) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"

	err = os.WriteFile(tmp, doc, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document file: %s", tmp)
		return err
	}

	err = os.Rename(tmp, path)
	if err != nil {
		err = errors.Wrapf(err, "failed to replace document file: %s", path)
		return err
	}

	return err
}

// Close is a no-op for the file store.
func (s *JSONFileStore) Close() (err error) {
	return err
}
