package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated console login.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store keeps login sessions in memory. The console is a single-process
// deployment; sessions do not survive a restart, matching the original
// console's cookie lifetime semantics.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore creates a session store with the given lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for username and returns its token.
func (s *Store) Create(username string) *Session {
	now := time.Now()
	sess := &Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for token if it exists and has not expired.
// Expired sessions are dropped on access.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// Destroy removes a session.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Count returns the number of live sessions, pruning expired ones.
func (s *Store) Count() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	return len(s.sessions)
}
