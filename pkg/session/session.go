// Package session holds parsed face sets between the upload request
// and later export/preview requests. The store is safe for concurrent
// use and evicts idle sessions after a TTL so memory stays bounded.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is an uploaded model's parsed face set. Sessions are
// immutable once created; concurrent readers need no coordination
// beyond the store lookup.
type Session struct {
	ID       string
	Filename string
	Faces    []brep.Face
	Created  time.Time
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store is a keyed session store with TTL-based eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store whose sessions expire ttl after their last
// access. A non-positive ttl disables eviction.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.evictLoop()
	}
	return s
}

// Put stores a new session for the uploaded file and returns it with
// a fresh unique id.
func (s *Store) Put(filename string, faces []brep.Face) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Filename: filename,
		Faces:    faces,
		Created:  time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess, lastSeen: sess.Created}
	s.mu.Unlock()
	return sess
}

// Get returns the session with the given id and refreshes its
// eviction clock.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = time.Now()
	return e.session, nil
}

// Remove deletes a session. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction loop.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) evictLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictBefore(now.Add(-s.ttl))
		}
	}
}

// evictBefore removes sessions last accessed before the cutoff.
func (s *Store) evictBefore(cutoff time.Time) {
	s.mu.Lock()
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}
