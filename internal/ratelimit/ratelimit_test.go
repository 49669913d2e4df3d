package ratelimit

import (
	"testing"
	"time"

	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(time.Second, 3)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("test-key"), "request %d", i+1)
	}
	assert.False(t, limiter.Allow("test-key"))
	assert.True(t, limiter.Allow("other-key"))

	now = now.Add(1100 * time.Millisecond)
	assert.True(t, limiter.Allow("test-key"))
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := NewLimiter(time.Second, 5)

	assert.Equal(t, 5, limiter.Remaining("test-key"))
	limiter.Allow("test-key")
	limiter.Allow("test-key")
	assert.Equal(t, 3, limiter.Remaining("test-key"))
}

func TestLimiter_Sweep(t *testing.T) {
	limiter := NewLimiter(time.Second, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	now = now.Add(2 * time.Second)
	limiter.sweep()
	assert.Empty(t, limiter.counters)
}

func TestMultiKeyLimiter(t *testing.T) {
	m := NewMultiKeyLimiter(Config{ValidatePerMinute: 2, PreviewPerMinute: 1})
	defer m.Stop()

	assert.NoError(t, m.CheckValidation("192.168.1.1"))
	assert.NoError(t, m.CheckValidation("192.168.1.1"))
	err := m.CheckValidation("192.168.1.1")
	assert.ErrorIs(t, err, gerr.ErrTooManyRequests)
	assert.NoError(t, m.CheckValidation("192.168.1.2"))

	// limits are independent
	assert.NoError(t, m.CheckPreview("192.168.1.1"))
	assert.ErrorIs(t, m.CheckPreview("192.168.1.1"), gerr.ErrTooManyRequests)

	m.Stop()
}
