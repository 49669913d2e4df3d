package allocator

import (
	"context"
	"errors"
	"fmt"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "seq:"

// nextScript increments KEYS[1] unless it already reached ARGV[1]; -1 signals exhaustion.
// Redis runs scripts atomically, so the check and the increment cannot interleave.
var nextScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
if cur >= tonumber(ARGV[1]) then
	return -1
end
return redis.call('INCR', KEYS[1])
`)

// Redis keeps counters in redis. It never expires keys.
type Redis struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedis(rdb redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (r *Redis) key(b entity.Bucket) string {
	return r.prefix + b.String()
}

func (r *Redis) Next(ctx context.Context, b entity.Bucket) (int64, error) {
	n, err := nextScript.Run(ctx, r.rdb, []string{r.key(b)}, b.Limit).Int64()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: bucket %s: %v", gerr.ErrAllocationFailed, b, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
	}
	return n, nil
}

func (r *Redis) Peek(ctx context.Context, b entity.Bucket) (int64, error) {
	cur, err := r.rdb.Get(ctx, r.key(b)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("%w: bucket %s: %v", gerr.ErrAllocationFailed, b, err)
	}
	if b.Limit > 0 && cur >= b.Limit {
		return 0, fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
	}
	return cur + 1, nil
}
