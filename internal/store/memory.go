package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given ID.
	ErrNotFound = errors.New("session not found")

	// ErrTooManySessions is returned by Create when the store is full.
	ErrTooManySessions = errors.New("too many sessions")
)

type entry struct {
	state    session.State
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory session store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session ID
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions
	maxAge      time.Duration // idle time after which Sweep drops a session

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Values <= 0 are treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Create stores s under a fresh random ID.
func (s *MemoryStore) Create(st session.State) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		return "", ErrTooManySessions
	}

	id := uuid.NewString()
	s.data[id] = &entry{state: st, lastSeen: s.now()}
	return id, nil
}

// Get returns the current state of a session and marks it as seen.
func (s *MemoryStore) Get(id string) (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return session.State{}, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// Update replaces the state of a session with fn's result. fn runs under the
// store lock and must not block.
func (s *MemoryStore) Update(id string, fn func(session.State) session.State) (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return session.State{}, ErrNotFound
	}
	e.state = fn(e.state)
	e.lastSeen = s.now()
	return e.state, nil
}

// Sweep removes sessions not seen since now minus maxAge and returns how
// many were dropped. It is a no-op when maxAge is unlimited.
func (s *MemoryStore) Sweep(now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := now.Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
