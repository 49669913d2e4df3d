// Package registry administers the supplier and barcode model code registries.
package registry

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apexhome/products-manager/internal/cache"
	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

const (
	writeLockKey = "registry"
	backupFolder = "registry-backups"
)

type Service struct {
	rep    dependency.Repository
	cache  *cache.RegistryCache
	locker dependency.Locker
	// backup is nil when no object store is configured
	backup dependency.FileStore
	now    func() time.Time
}

func New(rep dependency.Repository, c *cache.RegistryCache, locker dependency.Locker, backup dependency.FileStore) *Service {
	return &Service{
		rep:    rep,
		cache:  c,
		locker: locker,
		backup: backup,
		now:    time.Now,
	}
}

// ReseedRequest replaces the registries. Exactly one of Seed and Derive should be set.
type ReseedRequest struct {
	Seed   *Snapshot
	Derive bool
	// Confirm must be true, reseeding deletes every registered code.
	Confirm bool
}

func (s *Service) withWriteLock(ctx context.Context, f func() error) error {
	release, err := s.locker.Obtain(ctx, writeLockKey)
	if err != nil {
		return fmt.Errorf("%w: registry is busy: %v", gerr.ErrBusy, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Default().ErrorContext(ctx, "can't release registry lock",
				slog.String("err", err.Error()),
			)
		}
	}()
	return f()
}

// RegisterSupplier uppercases and validates code and registers it.
// Codes are unique regardless of case.
func (s *Service) RegisterSupplier(ctx context.Context, code, name string, vendorId sql.NullInt32) (*entity.SupplierCode, error) {
	sci, err := normalizeSupplier(code, name, vendorId)
	if err != nil {
		return nil, err
	}

	var sc *entity.SupplierCode
	err = s.withWriteLock(ctx, func() error {
		_, err := s.rep.Registry().GetSupplierCode(ctx, sci.Code)
		switch {
		case err == nil:
			return gerr.Duplicate("supplier_code", "%q is already registered", sci.Code)
		case !errors.Is(err, gerr.ErrNotFound):
			return fmt.Errorf("can't check supplier code: %w", err)
		}

		id, err := s.rep.Registry().AddSupplierCode(ctx, &sci)
		if err != nil {
			return err
		}
		sc = &entity.SupplierCode{Id: id, CreatedAt: s.now().UTC(), SupplierCodeInsert: sci}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.PutSupplier(*sc)
	slog.Default().InfoContext(ctx, "supplier code registered",
		slog.String("code", sc.Code),
		slog.String("name", sc.Name),
	)
	return sc, nil
}

// RegisterModel uppercases and validates code and registers it.
// A product may own at most one barcode model code.
func (s *Service) RegisterModel(ctx context.Context, code, name, productSKU, itemType string) (*entity.BarcodeModelCode, error) {
	mci, err := normalizeModel(code, name, productSKU, itemType)
	if err != nil {
		return nil, err
	}

	var mc *entity.BarcodeModelCode
	err = s.withWriteLock(ctx, func() error {
		_, err := s.rep.Registry().GetBarcodeModelCode(ctx, mci.Code)
		switch {
		case err == nil:
			return gerr.Duplicate("model_code", "%q is already registered", mci.Code)
		case !errors.Is(err, gerr.ErrNotFound):
			return fmt.Errorf("can't check model code: %w", err)
		}
		if err := s.checkProducts(ctx, []entity.BarcodeModelCodeInsert{mci}); err != nil {
			return err
		}

		id, err := s.rep.Registry().AddBarcodeModelCode(ctx, &mci)
		if err != nil {
			return err
		}
		mc = &entity.BarcodeModelCode{Id: id, CreatedAt: s.now().UTC(), BarcodeModelCodeInsert: mci}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.PutModel(*mc)
	slog.Default().InfoContext(ctx, "model code registered",
		slog.String("code", mc.Code),
		slog.String("name", mc.Name),
	)
	return mc, nil
}

// ResolveSupplier looks up a supplier code. Structurally invalid codes fail with
// ErrInvalidInput, unknown ones with ErrCodeNotRegistered.
func (s *Service) ResolveSupplier(ctx context.Context, code string) (*entity.SupplierCode, error) {
	code = codefmt.Normalize(code)
	if err := codefmt.SupplierCodeRule.Validate(code); err != nil {
		return nil, err
	}
	sc, err := s.cache.Supplier(ctx, code)
	if errors.Is(err, gerr.ErrNotFound) {
		return nil, gerr.NotRegistered("supplier_code", "supplier code %q is not registered", code)
	}
	return sc, err
}

// ResolveModel looks up a barcode model code. Structurally invalid codes fail with
// ErrInvalidInput, unknown ones with ErrCodeNotRegistered.
func (s *Service) ResolveModel(ctx context.Context, code string) (*entity.BarcodeModelCode, error) {
	code = codefmt.Normalize(code)
	if err := codefmt.BarcodeModelCodeRule.Validate(code); err != nil {
		return nil, err
	}
	mc, err := s.cache.Model(ctx, code)
	if errors.Is(err, gerr.ErrNotFound) {
		return nil, gerr.NotRegistered("model_code", "model code %q is not registered", code)
	}
	return mc, err
}

// checkProducts verifies that every product SKU a model code points at exists.
func (s *Service) checkProducts(ctx context.Context, mcs []entity.BarcodeModelCodeInsert) error {
	for _, mc := range mcs {
		if !mc.ProductSKU.Valid {
			continue
		}
		_, err := s.rep.Products().GetProductBySKU(ctx, mc.ProductSKU.String)
		switch {
		case errors.Is(err, gerr.ErrNotFound):
			return gerr.InvalidInput("product_sku", "no product has sku %q", mc.ProductSKU.String)
		case err != nil:
			return fmt.Errorf("can't check product sku: %w", err)
		}
	}
	return nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]entity.SupplierCode, error) {
	return s.rep.Registry().ListSupplierCodes(ctx)
}

func (s *Service) ListModels(ctx context.Context) ([]entity.BarcodeModelCode, error) {
	return s.rep.Registry().ListBarcodeModelCodes(ctx)
}

func (s *Service) buildSeed(ctx context.Context, req *ReseedRequest) (*entity.RegistrySeed, error) {
	if req.Derive {
		if req.Seed != nil {
			return nil, gerr.InvalidInput("derive", "either derive or provide codes, not both")
		}
		vendors, err := s.rep.Hierarchy().ListVendors(ctx)
		if err != nil {
			return nil, err
		}
		products, err := s.rep.Products().ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return DeriveSeed(vendors, products)
	}
	if req.Seed == nil {
		return nil, gerr.InvalidInput("seed", "codes are required unless derive is set")
	}
	return req.Seed.Seed()
}

// PreviewSeed returns the seed a reseed would write without writing anything.
func (s *Service) PreviewSeed(ctx context.Context, req *ReseedRequest) (*entity.RegistrySeed, error) {
	return s.buildSeed(ctx, req)
}

// Reseed replaces both registries. It is destructive: it requires Confirm, writes a
// backup first when an object store is configured and aborts if the backup fails.
// Sequence counters are never touched, so barcodes issued before a reseed stay unique.
func (s *Service) Reseed(ctx context.Context, req *ReseedRequest) (*entity.ReseedResult, error) {
	if !req.Confirm {
		return nil, fmt.Errorf("%w: reseeding deletes every supplier and model code", gerr.ErrConfirmationRequired)
	}
	seed, err := s.buildSeed(ctx, req)
	if err != nil {
		return nil, err
	}

	var res *entity.ReseedResult
	err = s.withWriteLock(ctx, func() error {
		// derived seeds are built from existing products
		if !req.Derive {
			if err := s.checkProducts(ctx, seed.Models); err != nil {
				return err
			}
		}
		location, err := s.backupRegistry(ctx)
		if err != nil {
			return fmt.Errorf("backup failed, registry left unchanged: %w", err)
		}
		res, err = s.rep.Registry().ReplaceAll(ctx, seed)
		if err != nil {
			return err
		}
		res.BackupLocation = location
		return nil
	})
	// the database may have changed even when the lock release failed
	s.cache.Invalidate()
	if err != nil {
		return nil, err
	}

	slog.Default().WarnContext(ctx, "registry reseeded",
		slog.Int("suppliers_removed", res.SuppliersRemoved),
		slog.Int("models_removed", res.ModelsRemoved),
		slog.Int("suppliers_created", res.SuppliersCreated),
		slog.Int("models_created", res.ModelsCreated),
		slog.String("backup", res.BackupLocation),
	)
	return res, nil
}

func (s *Service) backupRegistry(ctx context.Context) (string, error) {
	if s.backup == nil {
		return "", nil
	}
	scs, err := s.rep.Registry().ListSupplierCodes(ctx)
	if err != nil {
		return "", err
	}
	mcs, err := s.rep.Registry().ListBarcodeModelCodes(ctx)
	if err != nil {
		return "", err
	}
	now := s.now()
	b, err := json.MarshalIndent(NewSnapshot(now, scs, mcs), "", "  ")
	if err != nil {
		return "", fmt.Errorf("can't marshal snapshot: %w", err)
	}
	key := fmt.Sprintf("%s/%s.json", backupFolder, now.UTC().Format("20060102T150405Z"))
	return s.backup.Upload(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json")
}

// ListBackups returns the stored registry snapshots, newest first.
func (s *Service) ListBackups(ctx context.Context) ([]entity.StoredObject, error) {
	if s.backup == nil {
		return []entity.StoredObject{}, nil
	}
	return s.backup.List(ctx, backupFolder)
}
