package dispatch

import (
	"context"
	"sync"

	"intake-gateway/internal/conversation"
)

// MemoryRequestStore keeps intake requests in process memory. Default when
// Postgres is not configured; also the test double.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests []conversation.Dossier
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{}
}

func (s *MemoryRequestStore) Save(_ context.Context, dossier conversation.Dossier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, dossier)
	return nil
}

// All returns a copy of every stored request.
func (s *MemoryRequestStore) All() []conversation.Dossier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]conversation.Dossier, len(s.requests))
	copy(out, s.requests)
	return out
}
