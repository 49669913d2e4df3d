// Package engine mints SKUs and serial barcodes and validates scanned codes.
//
// Every input is validated before a sequence value is allocated. A value allocated
// for a request that fails afterwards is consumed and leaves a gap in its bucket.
package engine

import (
	"time"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/metrics"
)

// MaxReceiptUnits bounds the number of units of a single goods receipt.
const MaxReceiptUnits = 500

type Engine struct {
	rep   dependency.Repository
	alloc dependency.Allocator
	codes dependency.CodeResolver
	m     *metrics.Metrics
	now   func() time.Time
}

// New creates an engine. m may be nil.
func New(rep dependency.Repository, alloc dependency.Allocator, codes dependency.CodeResolver, m *metrics.Metrics) *Engine {
	return &Engine{
		rep:   rep,
		alloc: alloc,
		codes: codes,
		m:     m,
		now:   time.Now,
	}
}
