package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const completionLockPrefix = "skipdispatch:complete:"

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCompletionLock implements core.CompletionLock with SET NX PX so that
// concurrent completions of one job token across instances are rejected early.
// The conditional UPDATE in SkipJobRepo.Complete stays the authoritative guard.
type RedisCompletionLock struct {
	client redis.UniversalClient
}

// NewRedisCompletionLock creates a lock backed by the given Redis client.
func NewRedisCompletionLock(client redis.UniversalClient) *RedisCompletionLock {
	return &RedisCompletionLock{client: client}
}

// Acquire sets the key to a fresh owner value if absent.
func (l *RedisCompletionLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("ttl must be positive")
	}

	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, completionLockPrefix+key, owner, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return owner, true, nil
}

// Release removes the key if owner still holds it. Releasing an expired or
// re-acquired key is not an error.
func (l *RedisCompletionLock) Release(ctx context.Context, key, owner string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	err := releaseScript.Run(ctx, l.client, []string{completionLockPrefix + key}, owner).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}

// LocalCompletionLock is an in-process lock used when Redis is not configured.
type LocalCompletionLock struct {
	mu    sync.Mutex
	held  map[string]localHold
	clock TimeProvider
}

type localHold struct {
	owner string
	until time.Time
}

// NewLocalCompletionLock creates an in-process lock. A nil clock uses real time.
func NewLocalCompletionLock(clock TimeProvider) *LocalCompletionLock {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &LocalCompletionLock{held: make(map[string]localHold), clock: clock}
}

// Acquire reports false while an unexpired holder exists.
func (l *LocalCompletionLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("ttl must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if h, ok := l.held[key]; ok && now.Before(h.until) {
		return "", false, nil
	}
	owner := uuid.NewString()
	l.held[key] = localHold{owner: owner, until: now.Add(ttl)}
	return owner, true, nil
}

// Release drops the key if owner still holds it.
func (l *LocalCompletionLock) Release(_ context.Context, key, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.held[key]; ok && h.owner == owner {
		delete(l.held, key)
	}
	return nil
}
