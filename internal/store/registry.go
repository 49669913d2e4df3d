package store

import (
	"context"
	"fmt"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type registryStore struct {
	*MYSQLStore
}

// Registry returns an object implementing the supplier and model code registries.
func (ms *MYSQLStore) Registry() dependency.Registry {
	return &registryStore{
		MYSQLStore: ms,
	}
}

func (rs *registryStore) AddSupplierCode(ctx context.Context, sc *entity.SupplierCodeInsert) (int, error) {
	query := `
	INSERT INTO supplier_code (code, name, vendor_id)
	VALUES (:code, :name, :vendorId)`
	id, err := ExecNamedLastId(ctx, rs.DB(), query, map[string]any{
		"code":     sc.Code,
		"name":     sc.Name,
		"vendorId": sc.VendorId,
	})
	if err != nil {
		if isErrUniqueViolation(err) {
			return 0, gerr.Duplicate("supplier_code", "%q is already registered", sc.Code)
		}
		if isErrForeignKeyViolation(err) {
			return 0, gerr.InvalidInput("vendor_id", "vendor %d does not exist", sc.VendorId.Int32)
		}
		return 0, fmt.Errorf("can't add supplier code: %w", err)
	}
	return id, nil
}

func (rs *registryStore) AddBarcodeModelCode(ctx context.Context, mc *entity.BarcodeModelCodeInsert) (int, error) {
	query := `
	INSERT INTO barcode_model_code (code, name, product_sku, item_type)
	VALUES (:code, :name, :productSku, :itemType)`
	id, err := ExecNamedLastId(ctx, rs.DB(), query, map[string]any{
		"code":       mc.Code,
		"name":       mc.Name,
		"productSku": mc.ProductSKU,
		"itemType":   mc.ItemType,
	})
	if err != nil {
		if isErrUniqueViolation(err) {
			// product_sku is unique too: a product has at most one barcode model code
			return 0, gerr.Duplicate("model_code", "%q or its product is already registered", mc.Code)
		}
		return 0, fmt.Errorf("can't add model code: %w", err)
	}
	return id, nil
}

func (rs *registryStore) GetSupplierCode(ctx context.Context, code string) (*entity.SupplierCode, error) {
	query := `SELECT id, created_at, code, name, vendor_id FROM supplier_code WHERE code = :code`
	return queryOne[entity.SupplierCode](ctx, rs.DB(), fmt.Sprintf("supplier code %q", code), query, map[string]any{"code": code})
}

func (rs *registryStore) GetBarcodeModelCode(ctx context.Context, code string) (*entity.BarcodeModelCode, error) {
	query := `SELECT id, created_at, code, name, product_sku, item_type FROM barcode_model_code WHERE code = :code`
	return queryOne[entity.BarcodeModelCode](ctx, rs.DB(), fmt.Sprintf("model code %q", code), query, map[string]any{"code": code})
}

func (rs *registryStore) ListSupplierCodes(ctx context.Context) ([]entity.SupplierCode, error) {
	scs, err := QueryListNamed[entity.SupplierCode](ctx, rs.DB(),
		`SELECT id, created_at, code, name, vendor_id FROM supplier_code ORDER BY code`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list supplier codes: %w", err)
	}
	return scs, nil
}

func (rs *registryStore) ListBarcodeModelCodes(ctx context.Context) ([]entity.BarcodeModelCode, error) {
	mcs, err := QueryListNamed[entity.BarcodeModelCode](ctx, rs.DB(),
		`SELECT id, created_at, code, name, product_sku, item_type FROM barcode_model_code ORDER BY code`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list model codes: %w", err)
	}
	return mcs, nil
}

func countRows(ctx context.Context, conn dependency.DB, table string) (int, error) {
	var n int
	if err := conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (rs *registryStore) ReplaceAll(ctx context.Context, seed *entity.RegistrySeed) (*entity.ReseedResult, error) {
	res := &entity.ReseedResult{}
	err := rs.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		var err error
		if res.SuppliersRemoved, err = countRows(ctx, rep.DB(), "supplier_code"); err != nil {
			return err
		}
		if res.ModelsRemoved, err = countRows(ctx, rep.DB(), "barcode_model_code"); err != nil {
			return err
		}
		if _, err := rep.DB().ExecContext(ctx, "DELETE FROM supplier_code"); err != nil {
			return fmt.Errorf("can't delete supplier codes: %w", err)
		}
		if _, err := rep.DB().ExecContext(ctx, "DELETE FROM barcode_model_code"); err != nil {
			return fmt.Errorf("can't delete model codes: %w", err)
		}

		if len(seed.Suppliers) > 0 {
			rows := make([]map[string]any, 0, len(seed.Suppliers))
			for _, sc := range seed.Suppliers {
				rows = append(rows, map[string]any{
					"code":      sc.Code,
					"name":      sc.Name,
					"vendor_id": sc.VendorId,
				})
			}
			if err := BulkInsert(ctx, rep.DB(), "supplier_code", rows); err != nil {
				if isErrUniqueViolation(err) {
					return gerr.Duplicate("supplier_code", "seed contains duplicate supplier codes")
				}
				if isErrForeignKeyViolation(err) {
					return gerr.InvalidInput("vendor_id", "seed references a vendor that does not exist")
				}
				return fmt.Errorf("can't insert supplier codes: %w", err)
			}
		}
		if len(seed.Models) > 0 {
			rows := make([]map[string]any, 0, len(seed.Models))
			for _, mc := range seed.Models {
				rows = append(rows, map[string]any{
					"code":        mc.Code,
					"name":        mc.Name,
					"product_sku": mc.ProductSKU,
					"item_type":   mc.ItemType,
				})
			}
			if err := BulkInsert(ctx, rep.DB(), "barcode_model_code", rows); err != nil {
				if isErrUniqueViolation(err) {
					return gerr.Duplicate("model_code", "seed contains duplicate model codes")
				}
				return fmt.Errorf("can't insert model codes: %w", err)
			}
		}
		res.SuppliersCreated = len(seed.Suppliers)
		res.ModelsCreated = len(seed.Models)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't replace registry: %w", err)
	}
	return res, nil
}
