// Package session provides the key-value store that holds the client's
// authentication state
package session

import (
	"maps"
	"sync"
)

// Fixed keys used by the API layer and the search workflow
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserType     = "user-Type"
	KeyUserEmail    = "userEmail"
	KeyIsAdmin      = "isAdmin"
	KeyFirstLogin   = "isFirstLogin"
)

// Store is persistent key-value storage for session state
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	// Clear removes every key
	Clear() error
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// NewMemoryStoreWith creates an in-memory store seeded with values
func NewMemoryStoreWith(values map[string]string) *MemoryStore {
	s := NewMemoryStore()
	maps.Copy(s.values, values)
	return s
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
	return nil
}

// Snapshot returns a copy of every stored value
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
