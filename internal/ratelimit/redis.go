package ratelimit

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed fixed_window.lua
var fixedWindowScript string

// RedisLimiter is a distributed fixed-window limiter. The read/compare/
// increment cycle runs as a Lua script so it is atomic across replicas.
type RedisLimiter struct {
	client    *redis.Client
	scriptSHA string
}

// NewRedisLimiter pings the server and preloads the window script.
func NewRedisLimiter(client *redis.Client) (*RedisLimiter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	sha, err := client.ScriptLoad(ctx, fixedWindowScript).Result()
	if err != nil {
		return nil, err
	}

	return &RedisLimiter{
		client:    client,
		scriptSHA: sha,
	}, nil
}

// Allow checks and counts a request for key.
func (r *RedisLimiter) Allow(ctx context.Context, key string, limit Limit) (Decision, error) {
	cmd := r.client.EvalSha(ctx, r.scriptSHA, []string{"limiter:" + key},
		limit.Max,                   // ARGV[1]
		limit.Window.Milliseconds(), // ARGV[2]
	)

	result, err := cmd.Result()
	if err != nil {
		return Decision{}, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, errors.New("invalid lua response format")
	}

	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	ttlMs, _ := values[2].(int64)

	dec := Decision{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
	}
	if !dec.Allowed {
		dec.RetryAfter = time.Duration(ttlMs) * time.Millisecond
	}
	return dec, nil
}
