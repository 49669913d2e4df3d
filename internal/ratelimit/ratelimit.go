package ratelimit

import (
	"fmt"
	"sync"
	"time"

	gerr "github.com/apexhome/products-manager/internal/errors"
)

type Config struct {
	// ValidatePerMinute bounds barcode validations per client IP.
	ValidatePerMinute int `mapstructure:"validate_per_minute"`
	// PreviewPerMinute bounds SKU previews per client IP.
	PreviewPerMinute int `mapstructure:"preview_per_minute"`
}

const (
	defaultValidatePerMinute = 600
	defaultPreviewPerMinute  = 300
)

// Limiter implements a simple in-memory fixed window rate limiter
type Limiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	window   time.Duration
	max      int
	now      func() time.Time
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		now:      time.Now,
	}
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// Remaining returns the number of remaining requests for the given key
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, exists := l.counters[key]
	if !exists || l.now().After(c.expiresAt) {
		return l.max
	}
	return max(l.max-c.count, 0)
}

// sweep removes expired counters
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, c := range l.counters {
		if now.After(c.expiresAt) {
			delete(l.counters, key)
		}
	}
}

// MultiKeyLimiter holds the limiters of the public endpoints
type MultiKeyLimiter struct {
	validate *Limiter
	preview  *Limiter
	stop     chan struct{}
	once     sync.Once
}

func NewMultiKeyLimiter(c Config) *MultiKeyLimiter {
	if c.ValidatePerMinute <= 0 {
		c.ValidatePerMinute = defaultValidatePerMinute
	}
	if c.PreviewPerMinute <= 0 {
		c.PreviewPerMinute = defaultPreviewPerMinute
	}
	m := &MultiKeyLimiter{
		validate: NewLimiter(time.Minute, c.ValidatePerMinute),
		preview:  NewLimiter(time.Minute, c.PreviewPerMinute),
		stop:     make(chan struct{}),
	}
	go m.cleanup()
	return m
}

func (m *MultiKeyLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.validate.sweep()
			m.preview.sweep()
		case <-m.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine.
func (m *MultiKeyLimiter) Stop() {
	m.once.Do(func() { close(m.stop) })
}

// CheckValidation verifies if a barcode validation is allowed from the given IP
func (m *MultiKeyLimiter) CheckValidation(ip string) error {
	if !m.validate.Allow(ip) {
		return fmt.Errorf("%w: too many validation requests, please slow down", gerr.ErrTooManyRequests)
	}
	return nil
}

// CheckPreview verifies if a SKU preview is allowed from the given IP
func (m *MultiKeyLimiter) CheckPreview(ip string) error {
	if !m.preview.Allow(ip) {
		return fmt.Errorf("%w: too many sku previews, please slow down", gerr.ErrTooManyRequests)
	}
	return nil
}
