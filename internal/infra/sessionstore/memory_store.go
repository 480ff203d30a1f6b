package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/skycast/internal/domain/widget"
)

// DefaultTTL bounds how long an untouched session is kept.
const DefaultTTL = 30 * time.Minute

type sessionRecord struct {
	current   uint64
	state     widget.State
	hasState  bool
	expiresAt time.Time
}

// MemoryStore keeps widget sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*sessionRecord
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*sessionRecord),
		now:      time.Now,
	}
}

// Begin implements widget.Store.
func (s *MemoryStore) Begin(_ context.Context, sessionID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	rec := s.sessions[sessionID]
	if rec == nil {
		rec = &sessionRecord{}
		s.sessions[sessionID] = rec
	}
	rec.current++
	rec.expiresAt = now.Add(s.ttl)
	return rec.current, nil
}

// Publish implements widget.Store.
func (s *MemoryStore) Publish(_ context.Context, sessionID string, st widget.State) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	rec := s.sessions[sessionID]
	var current uint64
	if rec != nil {
		current = rec.current
	}
	if st.QueryID != current {
		return false, nil
	}
	if rec == nil {
		rec = &sessionRecord{}
		s.sessions[sessionID] = rec
	}
	rec.state = st
	rec.hasState = true
	rec.expiresAt = now.Add(s.ttl)
	return true, nil
}

// Load implements widget.Store.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (widget.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok || !rec.hasState || hasExpired(rec.expiresAt, s.now()) {
		return widget.State{}, false, nil
	}
	return rec.state, true, nil
}

func (s *MemoryStore) cleanupLocked(now time.Time) {
	for id, rec := range s.sessions {
		if hasExpired(rec.expiresAt, now) {
			delete(s.sessions, id)
		}
	}
}

func hasExpired(ts, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(now)
}

var _ widget.Store = (*MemoryStore)(nil)

// Close drops every session.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*sessionRecord)
}
