// Package allocator issues per-bucket sequence numbers.
//
// Every backend guarantees that within one bucket a value is issued at most once and
// that values never decrease. Values allocated for a request that later fails are
// consumed and leave a gap.
package allocator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/apexhome/products-manager/internal/metrics"
	"github.com/redis/go-redis/v9"
)

type Backend string

const (
	BackendMySQL  Backend = "mysql"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

type Config struct {
	Backend Backend `mapstructure:"backend"`
	// AlertRatio is the fraction of a bucket's capacity at which a capacity alert is raised.
	AlertRatio float64 `mapstructure:"alert_ratio"`
	// RedisKeyPrefix namespaces counter keys of the redis backend.
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
	// AllowVolatile permits the memory backend. Its counters restart at 1 with the
	// process, so it is only fit for tests and local development.
	AllowVolatile bool `mapstructure:"allow_volatile"`
}

const defaultAlertRatio = 0.9

// New builds the configured backend wrapped with metrics and capacity alerts.
// rdb is only used by the redis backend and may be nil otherwise.
func New(c Config, rep dependency.Repository, rdb redis.Cmdable, m *metrics.Metrics, mailer dependency.Mailer) (*Instrumented, error) {
	var backend dependency.Allocator
	switch c.Backend {
	case "", BackendMySQL:
		backend = NewStore(rep)
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis sequence backend requires a redis connection")
		}
		backend = NewRedis(rdb, c.RedisKeyPrefix)
	case BackendMemory:
		if !c.AllowVolatile {
			return nil, fmt.Errorf("memory sequence backend loses its counters on restart, set sequence.allow_volatile to use it")
		}
		slog.Default().Warn("memory sequence backend in use, counters reset on restart and issued codes will collide")
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("unknown sequence backend %q", c.Backend)
	}
	return Instrument(backend, c.AlertRatio, m, mailer), nil
}

// Store allocates through the sequence_counter table.
type Store struct {
	rep dependency.Repository
}

func NewStore(rep dependency.Repository) *Store {
	return &Store{rep: rep}
}

func (s *Store) Next(ctx context.Context, b entity.Bucket) (int64, error) {
	return s.rep.Sequences().Next(ctx, b)
}

func (s *Store) Peek(ctx context.Context, b entity.Bucket) (int64, error) {
	return s.rep.Sequences().Peek(ctx, b)
}

// Instrumented records metrics for every allocation and raises a capacity alert
// when a bucket issues the value at its alert threshold.
type Instrumented struct {
	next   dependency.Allocator
	ratio  float64
	m      *metrics.Metrics
	mailer dependency.Mailer
}

// Instrument wraps next. m and mailer may be nil.
func Instrument(next dependency.Allocator, ratio float64, m *metrics.Metrics, mailer dependency.Mailer) *Instrumented {
	if ratio <= 0 || ratio > 1 {
		ratio = defaultAlertRatio
	}
	return &Instrumented{
		next:   next,
		ratio:  ratio,
		m:      m,
		mailer: mailer,
	}
}

// AlertThreshold is the value whose issue raises the capacity alert of b.
func (a *Instrumented) AlertThreshold(b entity.Bucket) int64 {
	t := int64(math.Ceil(float64(b.Limit) * a.ratio))
	if t < 1 {
		t = 1
	}
	return t
}

func (a *Instrumented) Next(ctx context.Context, b entity.Bucket) (int64, error) {
	start := time.Now()
	n, err := a.next.Next(ctx, b)
	switch {
	case errors.Is(err, gerr.ErrSequenceExhausted):
		a.m.ObserveAllocation(string(b.Kind), "exhausted", start)
		slog.Default().WarnContext(ctx, "sequence bucket exhausted",
			slog.String("bucket", b.String()),
			slog.Int64("limit", b.Limit),
		)
		return 0, err
	case err != nil:
		a.m.ObserveAllocation(string(b.Kind), "failed", start)
		slog.Default().ErrorContext(ctx, "can't allocate sequence",
			slog.String("err", err.Error()),
			slog.String("bucket", b.String()),
		)
		return 0, err
	}
	a.m.ObserveAllocation(string(b.Kind), "ok", start)

	// each value is issued once, so the threshold is crossed exactly once
	if b.Limit > 0 && n == a.AlertThreshold(b) {
		a.alert(ctx, b, n)
	}
	return n, nil
}

func (a *Instrumented) Peek(ctx context.Context, b entity.Bucket) (int64, error) {
	return a.next.Peek(ctx, b)
}

func (a *Instrumented) alert(ctx context.Context, b entity.Bucket, n int64) {
	a.m.ObserveCapacityAlert(string(b.Kind))
	slog.Default().WarnContext(ctx, "sequence bucket crossed capacity threshold",
		slog.String("bucket", b.String()),
		slog.Int64("issued", n),
		slog.Int64("limit", b.Limit),
	)
	if a.mailer == nil {
		return
	}
	// the allocation already happened, a failed alert must not fail it
	if err := a.mailer.QueueCapacityAlert(context.WithoutCancel(ctx), &entity.CapacityAlert{Bucket: b, Issued: n}); err != nil {
		slog.Default().ErrorContext(ctx, "can't queue capacity alert",
			slog.String("err", err.Error()),
			slog.String("bucket", b.String()),
		)
	}
}
