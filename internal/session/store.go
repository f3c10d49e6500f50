// Package session keeps per-user conversation state in process memory with a
// sliding inactivity timeout.
package session

import (
	"maps"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTimeout is the inactivity window after which a session is dropped
const DefaultTimeout = 30 * time.Minute

// Session is the conversation context of one user
type Session struct {
	UserID        string
	State         string // empty means the conversation has not started
	Authenticated bool
	AccountID     string // backing-store user ID, set once authenticated
	Email         string
	Scratch       map[string]string // flow-scoped fields, cleared when a flow ends
	LastActivity  time.Time
}

func (s *Session) clone() Session {
	copied := *s
	copied.Scratch = maps.Clone(s.Scratch)
	return copied
}

// Config configures a Store
type Config struct {
	Timeout time.Duration
}

// Store is a concurrency-safe session map keyed by user ID. Expired sessions are
// dropped lazily on read and in bulk by EvictExpired.
type Store struct {
	mu      sync.Mutex
	items   *cache.Cache
	timeout time.Duration
}

// NewStore creates a session store. Sweeping is left to the caller (see EvictExpired)
// so the process owns the cleanup schedule.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{
		items:   cache.New(timeout, 0),
		timeout: timeout,
	}
}

// Timeout returns the configured inactivity timeout
func (s *Store) Timeout() time.Duration {
	return s.timeout
}

// Get returns a copy of the session if it exists and has not expired.
// A successful read refreshes the session's activity time.
func (s *Store) Get(userID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.load(userID)
	if !ok {
		return Session{}, false
	}
	return sess.clone(), true
}

// Update applies fn to the user's session, creating it if absent, and refreshes
// its activity time. fn runs under the store lock and must not call back into the store.
func (s *Store) Update(userID string, fn func(sess *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.load(userID)
	if !ok {
		sess = &Session{UserID: userID}
	}
	fn(sess)

	sess.UserID = userID
	s.save(sess)
}

// SetState moves the user's conversation to state
func (s *Store) SetState(userID, state string) {
	s.Update(userID, func(sess *Session) {
		sess.State = state
	})
}

// GetState returns the current state, or false if there is no live session
func (s *Store) GetState(userID string) (string, bool) {
	sess, ok := s.Get(userID)
	if !ok || sess.State == "" {
		return "", false
	}
	return sess.State, true
}

// SetScratch stores a flow-scoped value
func (s *Store) SetScratch(userID, key, value string) {
	s.Update(userID, func(sess *Session) {
		if sess.Scratch == nil {
			sess.Scratch = make(map[string]string)
		}
		sess.Scratch[key] = value
	})
}

// GetScratch returns a flow-scoped value
func (s *Store) GetScratch(userID, key string) (string, bool) {
	sess, ok := s.Get(userID)
	if !ok {
		return "", false
	}
	value, ok := sess.Scratch[key]
	return value, ok
}

// ClearScratch drops all flow-scoped values. It is a no-op for unknown users.
func (s *Store) ClearScratch(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.load(userID)
	if !ok {
		return
	}
	sess.Scratch = nil
	s.save(sess)
}

// Clear removes the session entirely
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Delete(userID)
}

// EvictExpired removes every session past the timeout and returns how many were dropped
func (s *Store) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.items.ItemCount()
	s.items.DeleteExpired()
	return before - s.items.ItemCount()
}

// Len returns the number of stored sessions, including expired ones not yet swept
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// load must be called with s.mu held
func (s *Store) load(userID string) (*Session, bool) {
	v, found := s.items.Get(userID)
	if !found {
		// go-cache hides expired items but keeps them until deleted
		s.items.Delete(userID)
		return nil, false
	}
	sess := v.(*Session)
	s.save(sess)
	return sess, true
}

// save must be called with s.mu held
func (s *Store) save(sess *Session) {
	sess.LastActivity = time.Now()
	s.items.SetDefault(sess.UserID, sess)
}
