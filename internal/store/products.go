package store

import (
	"context"
	"fmt"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing product interface
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

func insertProduct(ctx context.Context, rep dependency.Repository, product *entity.ProductInsert) (int, error) {
	query := `
	INSERT INTO product
	(sku, name, brand_id, category_id, subcategory_id, item_type, model_code, mrp)
	VALUES (:sku, :name, :brandId, :categoryId, :subcategoryId, :itemType, :modelCode, :mrp)`

	params := map[string]any{
		"sku":           product.SKU,
		"name":          product.Name,
		"brandId":       product.BrandId,
		"categoryId":    product.CategoryId,
		"subcategoryId": product.SubcategoryId,
		"itemType":      product.ItemType,
		"modelCode":     product.ModelCode,
		"mrp":           product.MRP,
	}

	return ExecNamedLastId(ctx, rep.DB(), query, params)
}

// AddProduct inserts a product whose SKU has already been committed.
func (ps *productStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error) {
	id, err := insertProduct(ctx, ps.MYSQLStore, prd)
	if err != nil {
		if isErrUniqueViolation(err) {
			return 0, gerr.Duplicate("sku", "%q is already assigned", prd.SKU)
		}
		return 0, fmt.Errorf("can't add product: %w", err)
	}
	return id, nil
}

// GetProductBySKU returns the product owning sku, soft-deleted ones included,
// since a SKU is never reassigned.
func (ps *productStore) GetProductBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
	SELECT id, created_at, deleted_at, sku, name, brand_id, category_id, subcategory_id, item_type, model_code, mrp
	FROM product
	WHERE sku = :sku`
	return queryOne[entity.Product](ctx, ps.DB(), fmt.Sprintf("product %q", sku), query, map[string]any{"sku": sku})
}

func (ps *productStore) ListProducts(ctx context.Context) ([]entity.Product, error) {
	query := `
	SELECT id, created_at, deleted_at, sku, name, brand_id, category_id, subcategory_id, item_type, model_code, mrp
	FROM product
	WHERE deleted_at IS NULL
	ORDER BY id`
	prds, err := QueryListNamed[entity.Product](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list products: %w", err)
	}
	return prds, nil
}
