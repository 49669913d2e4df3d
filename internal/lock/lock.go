// Package lock serializes registry writers.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	TTL        time.Duration `mapstructure:"ttl"`
	RetryEvery time.Duration `mapstructure:"retry_every"`
	MaxRetries int           `mapstructure:"max_retries"`
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	if c.RetryEvery <= 0 {
		c.RetryEvery = 100 * time.Millisecond
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 50
	}
	return c
}

// ErrNotObtained is returned when the lock stayed busy for all retries.
var ErrNotObtained = errors.New("lock not obtained")

const keyPrefix = "lock:"

// Redis is a lock shared by every instance connected to the same redis.
type Redis struct {
	client *redislock.Client
	c      Config
}

func NewRedis(rdb redis.UniversalClient, c Config) *Redis {
	return &Redis{
		client: redislock.New(rdb),
		c:      c.withDefaults(),
	}
}

func (r *Redis) Obtain(ctx context.Context, key string) (func(context.Context) error, error) {
	l, err := r.client.Obtain(ctx, keyPrefix+key, r.c.TTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(r.c.RetryEvery), r.c.MaxRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("can't obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := l.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// expired while held, nothing left to release
			return nil
		}
		return err
	}, nil
}

// Local is an in-process lock for single instance deployments.
type Local struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocal() *Local {
	return &Local{
		locks: make(map[string]chan struct{}),
	}
}

func (l *Local) ch(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// Obtain blocks until key is free or ctx is done.
func (l *Local) Obtain(ctx context.Context, key string) (func(context.Context) error, error) {
	ch := l.ch(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrNotObtained, key, ctx.Err())
	}
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}, nil
}
