package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisLock_WithLock(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewRedisLock(client, LockOptions{}, zap.NewNop())

	executed := false
	err := lock.WithLock(context.Background(), "lock:test", func(ctx context.Context) error {
		executed = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, executed)
}

func TestRedisLock_PropagatesError(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewRedisLock(client, LockOptions{}, zap.NewNop())

	err := lock.WithLock(context.Background(), "lock:test", func(ctx context.Context) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestRedisLock_EmptyKey(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewRedisLock(client, LockOptions{}, zap.NewNop())

	err := lock.WithLock(context.Background(), "", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyLockKey)
}

func TestRedisLock_ReleasedAfterRun(t *testing.T) {
	mr, client := setupTestRedis(t)
	lock := NewRedisLock(client, LockOptions{}, zap.NewNop())

	require.NoError(t, lock.WithLock(context.Background(), "lock:release", func(ctx context.Context) error {
		assert.True(t, mr.Exists("lock:release"))
		return nil
	}))
	assert.False(t, mr.Exists("lock:release"))
}

func TestRedisLock_Serializes(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewRedisLock(client, LockOptions{Expiry: 5 * time.Second, Tries: 200, RetryDelay: 5 * time.Millisecond}, zap.NewNop())

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lock.WithLock(context.Background(), "lock:concurrent", func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}
