package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/internal/testutil"
)

func TestRedisCompletionLock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	lock := NewRedisCompletionLock(client)
	ctx := context.Background()

	owner, ok, err := lock.Acquire(ctx, "token-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, owner)

	_, ok, err = lock.Acquire(ctx, "token-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	ttl := client.PTTL(ctx, completionLockPrefix+"token-1").Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, lock.Release(ctx, "token-1", owner))
	_, ok, err = lock.Acquire(ctx, "token-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = lock.Acquire(ctx, "", time.Minute)
	require.Error(t, err)
}

func TestRedisCompletionLock_StaleReleaseKeepsNewOwner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	lock := NewRedisCompletionLock(client)
	ctx := context.Background()
	key := completionLockPrefix + "token-1"

	first, ok, err := lock.Acquire(ctx, "token-1", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		return client.Exists(ctx, key).Val() == 0
	}, 2*time.Second, 10*time.Millisecond, "first hold should expire")

	second, ok, err := lock.Acquire(ctx, "token-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, first, second)

	require.NoError(t, lock.Release(ctx, "token-1", first))
	assert.Equal(t, second, client.Get(ctx, key).Val(), "stale release must not drop the new owner")

	_, ok, err = lock.Acquire(ctx, "token-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx, "token-1", second))
	assert.Zero(t, client.Exists(ctx, key).Val())
}

func TestLocalCompletionLock(t *testing.T) {
	clock := NewFixedTimeProvider(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	lock := NewLocalCompletionLock(clock)
	ctx := context.Background()

	first, ok, err := lock.Acquire(ctx, "token-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = lock.Acquire(ctx, "token-1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = lock.Acquire(ctx, "token-2", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	clock.AddTime(31 * time.Second)
	second, ok, err := lock.Acquire(ctx, "token-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired holder is replaced")

	require.NoError(t, lock.Release(ctx, "token-1", first))
	_, ok, err = lock.Acquire(ctx, "token-1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "stale release must not drop the new owner")

	require.NoError(t, lock.Release(ctx, "token-1", second))
	_, ok, err = lock.Acquire(ctx, "token-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = lock.Acquire(ctx, "token-3", 0)
	require.Error(t, err)
}
