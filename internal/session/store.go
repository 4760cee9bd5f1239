// Package session keeps the server-side admin sessions of the site.
//
// Sessions live only in process memory. A client refers to its session
// through a signed cookie (see Codec); the Store maps the opaque session id
// to a small record and forgets records that stay idle for too long.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTimeout is used when a Store is created with a non-positive timeout.
const DefaultIdleTimeout = 2 * time.Hour

// Session is a snapshot of one server-side session.
type Session struct {
	ID       string
	Admin    bool
	LastSeen time.Time
}

// Store is an in-memory session table safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
}

// NewStore creates a Store that expires sessions idle for longer than idle.
func NewStore(idle time.Duration) *Store {
	return NewStoreWithNow(idle, time.Now)
}

// NewStoreWithNow is NewStore with an explicit clock.
func NewStoreWithNow(idle time.Duration, now func() time.Time) *Store {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      now,
	}
}

// Create registers a new unprivileged session with a random id.
func (s *Store) Create() Session {
	sess := &Session{ID: uuid.NewString(), LastSeen: s.now()}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns the session for id and refreshes its idle timer. An expired
// session is removed and reported as missing.
func (s *Store) Get(id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return Session{}, false
	}
	sess.LastSeen = now
	return *sess, true
}

// SetAdmin sets the admin flag of an existing session. It reports false
// when the session does not exist.
func (s *Store) SetAdmin(id string, admin bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Admin = admin
	sess.LastSeen = s.now()
	return true
}

// Destroy removes the session. Unknown ids are ignored.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep removes every expired session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastSeen) > s.idle
}
