package allocator

import (
	"context"
	"fmt"
	"sync"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type counter struct {
	mu   sync.Mutex
	last int64
}

// Memory keeps counters in process. A per-bucket mutex is held only for the increment.
// Counters are lost on restart, so it is meant for tests and single-process development.
type Memory struct {
	mu       sync.RWMutex
	counters map[string]*counter
}

func NewMemory() *Memory {
	return &Memory{
		counters: make(map[string]*counter),
	}
}

func (m *Memory) counter(b entity.Bucket) *counter {
	key := b.String()

	m.mu.RLock()
	c, ok := m.counters[key]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.counters[key]; !ok {
		c = &counter{}
		m.counters[key] = c
	}
	return c
}

func (m *Memory) Next(ctx context.Context, b entity.Bucket) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c := m.counter(b)
	c.mu.Lock()
	defer c.mu.Unlock()
	if b.Limit > 0 && c.last >= b.Limit {
		return 0, fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
	}
	c.last++
	return c.last, nil
}

func (m *Memory) Peek(ctx context.Context, b entity.Bucket) (int64, error) {
	c := m.counter(b)
	c.mu.Lock()
	defer c.mu.Unlock()
	if b.Limit > 0 && c.last >= b.Limit {
		return 0, fmt.Errorf("%w: bucket %s reached %d", gerr.ErrSequenceExhausted, b, b.Limit)
	}
	return c.last + 1, nil
}

// Last returns the last value issued in b, 0 if none.
func (m *Memory) Last(b entity.Bucket) int64 {
	m.mu.RLock()
	c, ok := m.counters[b.String()]
	m.mu.RUnlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
