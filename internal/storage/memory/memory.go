// Package memory provides an in-process implementation of the storage.Store interface.
// Sessions do not survive a restart.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/dutchpay/internal/ledger"
	"github.com/mmynk/dutchpay/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with a map guarded by a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*storage.Session
	ttl      time.Duration
	now      func() time.Time

	// OnCountChange, if set, is called with the number of sessions after every change.
	OnCountChange func(n int)
}

// New creates a MemoryStore. Sessions idle for longer than ttl are removed by
// Sweep; a zero ttl disables expiry.
func New(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*storage.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// CreateSession registers a new session with an empty ledger.
func (s *MemoryStore) CreateSession(ctx context.Context) (*storage.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	session := storage.NewSession(id.String(), ledger.New(), s.now())

	s.mu.Lock()
	s.sessions[session.ID] = session
	n := len(s.sessions)
	s.mu.Unlock()

	s.notify(n)
	return session, nil
}

// GetSession retrieves a session by its ID.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*storage.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// DeleteSession removes a session.
func (s *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	n := len(s.sessions)
	s.mu.Unlock()

	s.notify(n)
	return nil
}

// Sweep removes sessions idle for longer than the store's ttl and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, session := range s.sessions {
		if session.LastUsed().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		slog.Info("Expired idle sessions", "removed", removed, "remaining", n)
		s.notify(n)
	}
	return removed
}

// RunJanitor calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close drops every session.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.sessions = make(map[string]*storage.Session)
	s.mu.Unlock()

	s.notify(0)
	return nil
}

func (s *MemoryStore) notify(n int) {
	if s.OnCountChange != nil {
		s.OnCountChange(n)
	}
}
