// FilePath: internal/session/session.memory.go
package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	ws     Workspace
	tokens map[View]uint64
	seen   time.Time
}

// MemoryStore keeps workspaces in process memory. Entries idle for longer
// than ttl are dropped on the next write.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A zero ttl keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) entry(sid string) *memoryEntry {
	now := s.now()
	e, ok := s.entries[sid]
	if !ok || (s.ttl > 0 && now.Sub(e.seen) > s.ttl) {
		e = &memoryEntry{tokens: make(map[View]uint64)}
		s.entries[sid] = e
	}
	e.seen = now
	return e
}

func (s *MemoryStore) Load(_ context.Context, sid string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.entry(sid).ws
	return &ws, nil
}

func (s *MemoryStore) Update(_ context.Context, sid string, fn func(*Workspace)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid)
	fn(&e.ws)
	e.ws.UpdatedAt = s.now()
	s.evict()
	return nil
}

func (s *MemoryStore) Begin(_ context.Context, sid string, view View) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid)
	e.tokens[view]++
	return e.tokens[view], nil
}

func (s *MemoryStore) Commit(_ context.Context, sid string, view View, token uint64, fn func(*Workspace)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid)
	if e.tokens[view] != token {
		return ErrStale
	}
	fn(&e.ws)
	e.ws.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// evict drops expired entries. Caller holds mu.
func (s *MemoryStore) evict() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for sid, e := range s.entries {
		if now.Sub(e.seen) > s.ttl {
			delete(s.entries, sid)
		}
	}
}

// Issued returns the latest token issued for view of sid.
func (s *MemoryStore) Issued(sid string, view View) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sid]; ok {
		return e.tokens[view]
	}
	return 0
}
