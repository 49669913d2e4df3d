package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type sequenceStore struct {
	*MYSQLStore
}

// Sequences returns an object implementing sequences interface
func (ms *MYSQLStore) Sequences() dependency.Sequences {
	return &sequenceStore{
		MYSQLStore: ms,
	}
}

// Next increments the bucket counter with a single upsert and reads the new value back
// through LAST_INSERT_ID, which is connection scoped. Both statements run in one
// transaction, so the row lock taken by the upsert serializes concurrent callers of
// the same bucket while other buckets proceed independently.
func (ss *sequenceStore) Next(ctx context.Context, b entity.Bucket) (int64, error) {
	var issued int64
	err := ss.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		conn := rep.DB()
		_, err := conn.ExecContext(ctx, `
		INSERT INTO sequence_counter (bucket_key, kind, last_issued)
		VALUES (?, ?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE last_issued = LAST_INSERT_ID(last_issued + 1)`,
			b.Key, string(b.Kind),
		)
		if err != nil {
			return fmt.Errorf("upsert counter: %w", err)
		}
		if err := conn.GetContext(ctx, &issued, `SELECT LAST_INSERT_ID()`); err != nil {
			return fmt.Errorf("read counter: %w", err)
		}
		if b.Limit > 0 && issued > b.Limit {
			// rolled back, the counter stays at the limit
			return fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
		}
		return nil
	})
	switch {
	case err == nil:
		return issued, nil
	case errors.Is(err, gerr.ErrSequenceExhausted), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0, err
	default:
		return 0, fmt.Errorf("%w: bucket %s: %v", gerr.ErrAllocationFailed, b, err)
	}
}

func (ss *sequenceStore) Peek(ctx context.Context, b entity.Bucket) (int64, error) {
	c, err := ss.GetCounter(ctx, b.Key, b.Kind)
	switch {
	case errors.Is(err, gerr.ErrNotFound):
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("%w: bucket %s: %v", gerr.ErrAllocationFailed, b, err)
	}
	next := c.LastIssued + 1
	if b.Limit > 0 && next > b.Limit {
		return 0, fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
	}
	return next, nil
}

func (ss *sequenceStore) GetCounter(ctx context.Context, bucketKey string, kind entity.BucketKind) (*entity.SequenceCounter, error) {
	query := `
	SELECT bucket_key, kind, last_issued, updated_at
	FROM sequence_counter
	WHERE bucket_key = :bucketKey AND kind = :kind`
	c, err := QueryNamedOne[entity.SequenceCounter](ctx, ss.DB(), query, map[string]any{
		"bucketKey": bucketKey,
		"kind":      string(kind),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: counter %s:%s", gerr.ErrNotFound, kind, bucketKey)
		}
		return nil, fmt.Errorf("can't get counter: %w", err)
	}
	return &c, nil
}
