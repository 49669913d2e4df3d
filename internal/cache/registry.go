package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	TTL time.Duration `mapstructure:"ttl"`
}

const defaultTTL = 5 * time.Minute

// RegistryCache is a read-mostly copy of the supplier and model code registries.
// Misses fall through to the database, so a code registered by another instance
// resolves before the next reload.
type RegistryCache struct {
	reg dependency.Registry
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	suppliers map[string]entity.SupplierCode
	models    map[string]entity.BarcodeModelCode
	loadedAt  time.Time

	sf singleflight.Group
}

func NewRegistryCache(reg dependency.Registry, c Config) *RegistryCache {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RegistryCache{
		reg:       reg,
		ttl:       ttl,
		now:       time.Now,
		suppliers: make(map[string]entity.SupplierCode),
		models:    make(map[string]entity.BarcodeModelCode),
	}
}

// Warm loads both registries. Concurrent callers share one load.
func (c *RegistryCache) Warm(ctx context.Context) error {
	_, err, _ := c.sf.Do("warm", func() (any, error) {
		var (
			scs []entity.SupplierCode
			mcs []entity.BarcodeModelCode
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			scs, err = c.reg.ListSupplierCodes(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			mcs, err = c.reg.ListBarcodeModelCodes(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("can't load registry: %w", err)
		}

		suppliers := make(map[string]entity.SupplierCode, len(scs))
		for _, sc := range scs {
			suppliers[sc.Code] = sc
		}
		models := make(map[string]entity.BarcodeModelCode, len(mcs))
		for _, mc := range mcs {
			models[mc.Code] = mc
		}

		c.mu.Lock()
		c.suppliers = suppliers
		c.models = models
		c.loadedAt = c.now()
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

func (c *RegistryCache) stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt.IsZero() || c.now().Sub(c.loadedAt) > c.ttl
}

// refresh reloads a stale cache. A failed reload keeps serving the old copy.
func (c *RegistryCache) refresh(ctx context.Context) {
	if !c.stale() {
		return
	}
	if err := c.Warm(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "can't refresh registry cache",
			slog.String("err", err.Error()),
		)
	}
}

// Invalidate forces a reload on the next lookup.
func (c *RegistryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
}

func (c *RegistryCache) PutSupplier(sc entity.SupplierCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suppliers[sc.Code] = sc
}

func (c *RegistryCache) PutModel(mc entity.BarcodeModelCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[mc.Code] = mc
}

// Supplier resolves a normalized supplier code. Unknown codes fail with ErrNotFound.
func (c *RegistryCache) Supplier(ctx context.Context, code string) (*entity.SupplierCode, error) {
	c.refresh(ctx)

	c.mu.RLock()
	sc, ok := c.suppliers[code]
	c.mu.RUnlock()
	if ok {
		return &sc, nil
	}

	v, err, _ := c.sf.Do("supplier:"+code, func() (any, error) {
		return c.reg.GetSupplierCode(ctx, code)
	})
	if err != nil {
		return nil, lookupErr(err)
	}
	found := v.(*entity.SupplierCode)
	c.PutSupplier(*found)
	cp := *found
	return &cp, nil
}

// Model resolves a normalized barcode model code. Unknown codes fail with ErrNotFound.
func (c *RegistryCache) Model(ctx context.Context, code string) (*entity.BarcodeModelCode, error) {
	c.refresh(ctx)

	c.mu.RLock()
	mc, ok := c.models[code]
	c.mu.RUnlock()
	if ok {
		return &mc, nil
	}

	v, err, _ := c.sf.Do("model:"+code, func() (any, error) {
		return c.reg.GetBarcodeModelCode(ctx, code)
	})
	if err != nil {
		return nil, lookupErr(err)
	}
	found := v.(*entity.BarcodeModelCode)
	c.PutModel(*found)
	cp := *found
	return &cp, nil
}

func lookupErr(err error) error {
	if errors.Is(err, gerr.ErrNotFound) {
		return err
	}
	return fmt.Errorf("can't resolve code: %w", err)
}
