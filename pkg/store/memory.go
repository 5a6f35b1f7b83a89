package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an ephemeral in-memory backend, used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() (s *MemoryStore) {
	s = &MemoryStore{docs: make(map[string]json.RawMessage)}
	return s
}

// Load returns the document stored under key, if any.
func (s *MemoryStore) Load(_ context.Context, key string) (doc json.RawMessage, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.docs[key]
	if !ok {
		return doc, false, err
	}

	// Copy so callers cannot mutate stored bytes.
	doc = make(json.RawMessage, len(stored))
	copy(doc, stored)
	found = true
	return doc, found, err
}

// Save inserts or replaces the document stored under key.
func (s *MemoryStore) Save(_ context.Context, key string, doc json.RawMessage) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	s.docs[key] = stored
	return err
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() (err error) {
	return err
}
