package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reg := db.Registry()

	_, err := reg.AddSupplierCode(ctx, &entity.SupplierCodeInsert{Code: "FS", Name: "Fine Steel"})
	require.NoError(t, err)

	// the unique key is case-insensitive
	_, err = reg.AddSupplierCode(ctx, &entity.SupplierCodeInsert{Code: "fs", Name: "Other"})
	assert.ErrorIs(t, err, gerr.ErrDuplicateCode)

	_, err = reg.AddBarcodeModelCode(ctx, &entity.BarcodeModelCodeInsert{
		Code:       "SDF",
		Name:       "Stand fan",
		ProductSKU: sql.NullString{String: "APX-FAN-GEN-FAN-SD-001", Valid: true},
		ItemType:   "FAN",
	})
	require.NoError(t, err)

	// at most one model code per product
	_, err = reg.AddBarcodeModelCode(ctx, &entity.BarcodeModelCodeInsert{
		Code:       "SDG",
		Name:       "Stand fan 2",
		ProductSKU: sql.NullString{String: "APX-FAN-GEN-FAN-SD-001", Valid: true},
	})
	assert.ErrorIs(t, err, gerr.ErrDuplicateCode)

	sc, err := reg.GetSupplierCode(ctx, "FS")
	require.NoError(t, err)
	assert.Equal(t, "Fine Steel", sc.Name)
	assert.False(t, sc.VendorId.Valid)

	mc, err := reg.GetBarcodeModelCode(ctx, "SDF")
	require.NoError(t, err)
	assert.Equal(t, "FAN", mc.ItemType)

	_, err = reg.GetSupplierCode(ctx, "ZZ")
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	// vendor_id must reference an existing vendor
	_, err = reg.AddSupplierCode(ctx, &entity.SupplierCodeInsert{
		Code:     "VX",
		Name:     "No vendor",
		VendorId: sql.NullInt32{Int32: 999999, Valid: true},
	})
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
	assert.Equal(t, "vendor_id", gerr.Field(err))

	res, err := reg.ReplaceAll(ctx, &entity.RegistrySeed{
		Suppliers: []entity.SupplierCodeInsert{{Code: "AB", Name: "A B"}, {Code: "CD", Name: "C D"}},
		Models:    []entity.BarcodeModelCodeInsert{{Code: "XYZ", Name: "xyz"}},
	})
	require.NoError(t, err)
	assert.Equal(t, &entity.ReseedResult{SuppliersRemoved: 1, ModelsRemoved: 1, SuppliersCreated: 2, ModelsCreated: 1}, res)

	scs, err := reg.ListSupplierCodes(ctx)
	require.NoError(t, err)
	require.Len(t, scs, 2)
	assert.Equal(t, "AB", scs[0].Code)

	// a failing seed leaves the registry as it was
	_, err = reg.ReplaceAll(ctx, &entity.RegistrySeed{
		Suppliers: []entity.SupplierCodeInsert{{Code: "QQ", Name: "q"}, {Code: "QQ", Name: "q"}},
	})
	assert.ErrorIs(t, err, gerr.ErrDuplicateCode)
	scs, err = reg.ListSupplierCodes(ctx)
	require.NoError(t, err)
	assert.Len(t, scs, 2)

	_, err = reg.ReplaceAll(ctx, &entity.RegistrySeed{
		Suppliers: []entity.SupplierCodeInsert{{Code: "QQ", Name: "q", VendorId: sql.NullInt32{Int32: 999999, Valid: true}}},
	})
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
	assert.Equal(t, "vendor_id", gerr.Field(err))
	scs, err = reg.ListSupplierCodes(ctx)
	require.NoError(t, err)
	assert.Len(t, scs, 2)
}
