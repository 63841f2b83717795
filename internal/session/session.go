package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Domain errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session represents a logged-in admin session.
type Session struct {
	ID         string
	IPAddress  string
	UserAgent  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsIdle checks if the session has been idle for too long
func (s *Session) IsIdle(idleTimeout time.Duration) bool {
	return time.Since(s.LastSeenAt) > idleTimeout
}

// Service manages admin sessions in process memory. Admin access does
// not need to survive a restart, so there is no persistent backing.
type Service struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	lifetime    time.Duration
	idleTimeout time.Duration
}

// NewService creates a new session service.
func NewService(lifetime, idleTimeout time.Duration) *Service {
	return &Service{
		sessions:    make(map[string]*Session),
		lifetime:    lifetime,
		idleTimeout: idleTimeout,
	}
}

// Create mints a new session.
func (s *Service) Create(ctx context.Context, ipAddress, userAgent string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.lifetime),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get retrieves a live session. Expired or idle sessions are dropped
// and reported as expired.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.IsExpired() || sess.IsIdle(s.idleTimeout) {
		s.Destroy(ctx, id)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Refresh updates the session's last seen time.
func (s *Service) Refresh(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastSeenAt = time.Now()
	return nil
}

// Destroy removes a session. Destroying an unknown session is a no-op.
func (s *Service) Destroy(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// CleanupExpired drops all expired or idle sessions.
func (s *Service) CleanupExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.IsExpired() || sess.IsIdle(s.idleTimeout) {
			delete(s.sessions, id)
		}
	}
	return nil
}
