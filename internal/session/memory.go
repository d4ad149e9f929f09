package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"meal-planner-api/internal/grocery"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It is the default backend
// for tests and single-instance deployments. Lists are stored serialized so
// callers can never mutate a stored list through a shared slice.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create stores the list under a fresh session id.
func (s *MemoryStore) Create(ctx context.Context, list grocery.List) (string, error) {
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	sessionID := uuid.New().String()

	s.mu.Lock()
	s.entries[sessionID] = entry
	s.mu.Unlock()

	return sessionID, nil
}

// Get returns the list stored under sessionID. Expired entries are swept on
// access and reported as missing.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (grocery.List, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	var list grocery.List
	if err := json.Unmarshal(entry.data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	return list, nil
}

// Delete removes the session. A second delete of the same id reports
// ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[sessionID]; !ok {
		return ErrNotFound
	}
	delete(s.entries, sessionID)
	return nil
}
