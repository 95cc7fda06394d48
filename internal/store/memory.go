package store

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a concurrency-safe in-memory TTL cache. Expiration is
// lazy: a read past the entry's deadline is a miss and evicts the entry.
// The total entry count is capped; when full, a write for a new key evicts
// the entry closest to expiry.
type MemoryStore struct {
	mu sync.RWMutex

	entries map[string]entry

	// maxEntries bounds memory. <= 0 is treated as unlimited.
	maxEntries int

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries entries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value for key, or (nil, false) on miss or expiry. The
// returned slice is a copy; callers may not mutate cached state.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := s.entries[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores value under key for the given TTL. A non-positive TTL disables
// caching for this call.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictNearestExpiryLocked()
	}

	s.entries[key] = entry{
		value:     stored,
		expiresAt: s.now().Add(ttl),
	}
}

// Delete removes key. It is a no-op when the key is absent.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the current entry count, including not-yet-swept expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SweepExpired removes all expired entries and reports how many were evicted.
// The periodic janitor calls this so entries that are never read again do not
// linger until capacity pressure evicts them.
func (s *MemoryStore) SweepExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// evictNearestExpiryLocked drops the entry closest to (or past) expiry.
// Callers must hold the write lock.
func (s *MemoryStore) evictNearestExpiryLocked() {
	var (
		victim   string
		earliest time.Time
		found    bool
	)
	for key, e := range s.entries {
		if !found || e.expiresAt.Before(earliest) {
			victim = key
			earliest = e.expiresAt
			found = true
		}
	}
	if found {
		delete(s.entries, victim)
	}
}
