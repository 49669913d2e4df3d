package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHierarchy(t *testing.T, db *MYSQLStore) {
	t.Helper()
	ctx := context.Background()
	for _, q := range []string{
		`INSERT INTO brand (id, code, name) VALUES (1, 'APX', 'Apex')`,
		`INSERT INTO category (id, code, name) VALUES (1, 'KIT', 'Kitchen')`,
		`INSERT INTO subcategory (id, category_id, code, name) VALUES (1, 1, 'MIX', 'Mixers')`,
		`INSERT INTO item_type (code, name) VALUES ('BLD', 'Blender')`,
		`INSERT INTO vendor (id, name) VALUES (1, 'Fine Steel Works')`,
	} {
		_, err := db.db.ExecContext(ctx, q)
		require.NoError(t, err)
	}
}

func TestHierarchy(t *testing.T) {
	db := newTestDB(t)
	seedHierarchy(t, db)
	ctx := context.Background()
	h := db.Hierarchy()

	b, err := h.GetBrandById(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "APX", b.Code)

	sc, err := h.GetSubcategoryById(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sc.CategoryId)

	it, err := h.GetItemType(ctx, "BLD")
	require.NoError(t, err)
	assert.Equal(t, "Blender", it.Name)

	_, err = h.GetCategoryById(ctx, 42)
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	vs, err := h.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vs, 1)
}

func TestProducts(t *testing.T) {
	db := newTestDB(t)
	seedHierarchy(t, db)
	ctx := context.Background()

	prd := &entity.ProductInsert{
		SKU:           "APX-KIT-MIX-BLD-PRO-001",
		Name:          "Blender Pro",
		BrandId:       1,
		CategoryId:    1,
		SubcategoryId: sql.NullInt32{Int32: 1, Valid: true},
		ItemType:      "BLD",
		ModelCode:     "PRO",
		MRP:           decimal.RequireFromString("4999.00"),
	}
	id, err := db.Products().AddProduct(ctx, prd)
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = db.Products().AddProduct(ctx, prd)
	assert.ErrorIs(t, err, gerr.ErrDuplicateCode)

	got, err := db.Products().GetProductBySKU(ctx, prd.SKU)
	require.NoError(t, err)
	assert.Equal(t, id, got.Id)
	assert.True(t, prd.MRP.Equal(got.MRP))

	_, err = db.Products().GetProductBySKU(ctx, "APX-KIT-MIX-BLD-PRO-002")
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	all, err := db.Products().ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSerialItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	items := []entity.SerialItemInsert{
		{Barcode: "APFSAASDF000001", ReceiptId: "r-1", SupplierCode: "FS", ModelCode: "SDF", UnitCost: decimal.NewFromInt(100), ReceivedAt: now},
		{Barcode: "APFSAASDF000002", ReceiptId: "r-1", SupplierCode: "FS", ModelCode: "SDF", UnitCost: decimal.NewFromInt(100), ReceivedAt: now},
	}
	require.NoError(t, db.SerialItems().AddSerialItems(ctx, items))

	err := db.SerialItems().AddSerialItems(ctx, items[:1])
	assert.ErrorIs(t, err, gerr.ErrDuplicateCode)

	it, err := db.SerialItems().GetSerialItemByBarcode(ctx, "APFSAASDF000002")
	require.NoError(t, err)
	assert.Equal(t, "r-1", it.ReceiptId)

	got, err := db.SerialItems().GetSerialItemsByReceipt(ctx, "r-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "APFSAASDF000001", got[0].Barcode)

	_, err = db.SerialItems().GetSerialItemsByReceipt(ctx, "r-2")
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}
