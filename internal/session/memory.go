package session

import (
	"context"
	"slices"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemoryStore returns a process-local Store. Its contents do not survive a
// restart of the process, only of the store object that uses it.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(s.payload), nil
}

func (s *memoryStore) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = slices.Clone(payload)
	return nil
}

func (s *memoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	return nil
}

func (s *memoryStore) Ping(_ context.Context) error { return nil }

func (s *memoryStore) Close() error { return nil }
