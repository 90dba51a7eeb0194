package conversation

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a user has no session in the store.
var ErrNotFound = errors.New("session not found")

// Store keeps per-user sessions. Implementations must be safe for
// concurrent use; serializing mutations per user is the engine's job.
type Store interface {
	Get(ctx context.Context, userID string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, userID string) error
}

// MemoryStore keeps sessions in process memory. It favors clarity over
// performance and is the default when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}
	return Session{}, ErrNotFound
}

func (s *MemoryStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
