package explorer

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps web sessions keyed by an opaque id.
// Sessions idle for longer than the TTL are swept in the background.
type SessionStore struct {
	mu       sync.Mutex
	entries  map[string]*storeEntry
	ttl      time.Duration
	factory  func() *Session
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type storeEntry struct {
	session  *Session
	lastUsed time.Time
}

// NewSessionStore creates a store and starts its sweeper.
// Call Close to stop the sweeper.
func NewSessionStore(ttl, sweepInterval time.Duration, factory func() *Session) *SessionStore {
	s := &SessionStore{
		entries: make(map[string]*storeEntry),
		ttl:     ttl,
		factory: factory,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go s.cleanup(sweepInterval)

	return s
}

// Get returns the session for id, creating a new one under a fresh id when
// id is unknown or expired. The returned id is the one to hand back to the client.
func (s *SessionStore) Get(id string) (*Session, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.entries[id]; ok && id != "" {
		entry.lastUsed = now
		return entry.session, id
	}

	id = uuid.NewString()
	session := s.factory()
	s.entries[id] = &storeEntry{session: session, lastUsed: now}
	return session, id
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Sweep removes idle sessions that are not loading and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.lastUsed) > s.ttl && !entry.session.Loading() {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Close stops the sweeper and waits for it to exit.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// cleanup periodically removes expired sessions.
func (s *SessionStore) cleanup(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}
