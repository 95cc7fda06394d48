package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is an in-process fixed-window limiter. State is local to the
// process; use RedisLimiter when a single budget must span replicas.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryLimiter constructs a MemoryLimiter with empty state.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow checks and counts a request for key. The counter resets atomically
// when the window boundary passes.
func (m *MemoryLimiter) Allow(ctx context.Context, key string, limit Limit) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= limit.Window {
		w = &window{start: now}
		m.windows[key] = w
	}

	if w.count >= limit.Max {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.start.Add(limit.Window).Sub(now),
		}, nil
	}

	w.count++
	return Decision{
		Allowed:   true,
		Remaining: limit.Max - w.count,
	}, nil
}
