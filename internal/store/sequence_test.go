package store

import (
	"context"
	"sync"
	"testing"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceNext(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seq := db.Sequences()

	b := entity.Bucket{Kind: entity.BucketSKU, Key: "APX-KIT-MIX-BLD-PRO", Limit: 999}

	next, err := seq.Peek(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	next, err = seq.Peek(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	// same key in another kind is another bucket
	other := entity.Bucket{Kind: entity.BucketBarcode, Key: b.Key, Limit: 999999}
	n, err := seq.Next(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	c, err := seq.GetCounter(ctx, b.Key, b.Kind)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.LastIssued)
}

func TestSequenceConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seq := db.Sequences()

	b := entity.Bucket{Kind: entity.BucketBarcode, Key: "FSAASDF", Limit: 999999}
	const n = 40

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, b)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[v], "duplicate %d", v)
			seen[v] = true
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
	for v := int64(1); v <= n; v++ {
		assert.True(t, seen[v], "missing %d", v)
	}
}

func TestSequenceExhausted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seq := db.Sequences()

	b := entity.Bucket{Kind: entity.BucketSKU, Key: "A-B-GEN-C-D", Limit: 2}
	for i := 0; i < 2; i++ {
		_, err := seq.Next(ctx, b)
		require.NoError(t, err)
	}

	_, err := seq.Next(ctx, b)
	assert.ErrorIs(t, err, gerr.ErrSequenceExhausted)
	_, err = seq.Peek(ctx, b)
	assert.ErrorIs(t, err, gerr.ErrSequenceExhausted)

	// the failed allocation was rolled back
	c, err := seq.GetCounter(ctx, b.Key, b.Kind)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.LastIssued)
}

func TestGetCounterNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Sequences().GetCounter(context.Background(), "missing", entity.BucketSKU)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}
