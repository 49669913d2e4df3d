package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSerializes(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		holders int32
		maxSeen int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Obtain(ctx, "registry")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&holders, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&holders, -1)
			assert.NoError(t, release(ctx))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
}

func TestLocalKeysAreIndependent(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	r1, err := l.Obtain(ctx, "a")
	require.NoError(t, err)
	r2, err := l.Obtain(ctx, "b")
	require.NoError(t, err)
	require.NoError(t, r1(ctx))
	require.NoError(t, r2(ctx))
}

func TestLocalTimeout(t *testing.T) {
	l := NewLocal()
	release, err := l.Obtain(context.Background(), "registry")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Obtain(ctx, "registry")
	assert.ErrorIs(t, err, ErrNotObtained)

	// double release is harmless
	require.NoError(t, release(context.Background()))
	require.NoError(t, release(context.Background()))

	release, err = l.Obtain(context.Background(), "registry")
	require.NoError(t, err)
	require.NoError(t, release(context.Background()))
}

func TestRedisLock(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.Close()

	l := NewRedis(client, Config{TTL: time.Second, RetryEvery: 10 * time.Millisecond, MaxRetries: 3})
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	release, err := l.Obtain(ctx, key)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, key)
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, release(ctx))

	release, err = l.Obtain(ctx, key)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}
