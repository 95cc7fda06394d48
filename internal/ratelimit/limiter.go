// Package ratelimit provides fixed-window request limiting keyed by caller
// identity. Two backends share the same Allow API: an in-process limiter for
// single-instance deployments and tests, and a Redis-backed limiter that
// enforces one shared budget across replicas.
package ratelimit

import (
	"context"
	"time"
)

// Limit defines a fixed-window policy: at most Max requests per Window.
type Limit struct {
	Max    int
	Window time.Duration
}

// Decision is the outcome of an Allow call. RetryAfter is only meaningful
// when Allowed is false: it is the time until the current window resets.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed under the
// given limit. Implementations must be safe for concurrent use and must not
// lose counts under concurrent increments on the same key. A denied request
// does not increment the window counter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit Limit) (Decision, error)
}
