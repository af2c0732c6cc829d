// Package storage keeps the ledgers of active sessions.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mmynk/dutchpay/internal/ledger"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction lets the service layer stay independent of where sessions live.
type Store interface {
	// CreateSession registers a new session with an empty ledger.
	// The session ID is assigned by the store.
	CreateSession(ctx context.Context) (*Session, error)

	// GetSession retrieves a session by its ID.
	// Returns ErrSessionNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// DeleteSession removes a session. Deleting an unknown session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}

// Session owns one group's ledger. Access to the ledger goes through Do,
// which serializes callers.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	ledger   *ledger.Ledger
	lastUsed time.Time
}

// NewSession wraps a ledger in a session.
func NewSession(id string, l *ledger.Ledger, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, ledger: l, lastUsed: now}
}

// Do runs fn with exclusive access to the session's ledger.
func (s *Session) Do(fn func(l *ledger.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.ledger)
}

// LastUsed returns when the ledger was last accessed.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
