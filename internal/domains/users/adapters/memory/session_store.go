package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
	"github.com/Apurer/storefront-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory session store keyed by token.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*domain.Session{}}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[clone.Token] = &clone
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}
