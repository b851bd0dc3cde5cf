package prompt

import (
	"context"
	"sync"
)

// Storage key prefixes, namespaced by username.
const (
	loginTimeKeyPrefix   = "feedback_login_time_"
	dismissTimeKeyPrefix = "feedback_dismiss_time_"
	hasGivenKeyPrefix    = "has_given_feedback_"
)

func loginTimeKey(username string) string   { return loginTimeKeyPrefix + username }
func dismissTimeKey(username string) string { return dismissTimeKeyPrefix + username }
func hasGivenKey(username string) string    { return hasGivenKeyPrefix + username }

// Store is the local persisted key-value state the engine reads and writes.
// An absent key is reported by ok=false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store, suitable for a single session with no
// cross-restart persistence.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
