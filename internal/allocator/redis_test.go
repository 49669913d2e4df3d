package allocator

import (
	"context"
	"sync"
	"testing"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	prefix := "test:seq:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return NewRedis(client, prefix)
}

func TestRedisNext(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()
	b := barcodeBucket("FSAASDF")

	v, err := r.Peek(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	const n = 100
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.Next(ctx, b)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)

	v, err = r.Peek(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(n+1), v)
}

func TestRedisExhausted(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()
	b := entity.Bucket{Kind: entity.BucketSKU, Key: "A-B-GEN-C-D", Limit: 2}

	for i := 0; i < 2; i++ {
		_, err := r.Next(ctx, b)
		require.NoError(t, err)
	}
	_, err := r.Next(ctx, b)
	assert.ErrorIs(t, err, gerr.ErrSequenceExhausted)
	_, err = r.Peek(ctx, b)
	assert.ErrorIs(t, err, gerr.ErrSequenceExhausted)
}
