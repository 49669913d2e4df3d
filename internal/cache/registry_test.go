package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/dependency/mocks"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func supplier(code string) entity.SupplierCode {
	return entity.SupplierCode{Id: 1, SupplierCodeInsert: entity.SupplierCodeInsert{Code: code, Name: code + " ltd"}}
}

func model(code string) entity.BarcodeModelCode {
	return entity.BarcodeModelCode{Id: 1, BarcodeModelCodeInsert: entity.BarcodeModelCodeInsert{Code: code, Name: code}}
}

func TestRegistryCacheWarmAndHit(t *testing.T) {
	reg := mocks.NewRegistry(t)
	reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{supplier("FS")}, nil).Once()
	reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{model("SDF")}, nil).Once()

	c := NewRegistryCache(reg, Config{TTL: time.Hour})
	require.NoError(t, c.Warm(context.Background()))

	for i := 0; i < 3; i++ {
		sc, err := c.Supplier(context.Background(), "FS")
		require.NoError(t, err)
		assert.Equal(t, "FS ltd", sc.Name)

		mc, err := c.Model(context.Background(), "SDF")
		require.NoError(t, err)
		assert.Equal(t, "SDF", mc.Code)
	}
}

func TestRegistryCacheMissFallsThrough(t *testing.T) {
	reg := mocks.NewRegistry(t)
	reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{}, nil).Once()
	reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{}, nil).Once()
	sc := supplier("QK")
	reg.On("GetSupplierCode", mock.Anything, "QK").Return(&sc, nil).Once()
	reg.On("GetSupplierCode", mock.Anything, "ZZ").Return(nil, fmt.Errorf("%w: supplier code", gerr.ErrNotFound)).Twice()

	c := NewRegistryCache(reg, Config{TTL: time.Hour})
	require.NoError(t, c.Warm(context.Background()))

	got, err := c.Supplier(context.Background(), "QK")
	require.NoError(t, err)
	assert.Equal(t, "QK", got.Code)
	// now cached
	_, err = c.Supplier(context.Background(), "QK")
	require.NoError(t, err)

	// misses are not cached
	for i := 0; i < 2; i++ {
		_, err = c.Supplier(context.Background(), "ZZ")
		assert.ErrorIs(t, err, gerr.ErrNotFound)
	}
}

func TestRegistryCacheReloadsWhenStale(t *testing.T) {
	reg := mocks.NewRegistry(t)
	reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{supplier("FS")}, nil).Once()
	reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{}, nil).Once()
	reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{supplier("AB")}, nil).Once()
	reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{}, nil).Once()
	reg.On("GetSupplierCode", mock.Anything, "FS").Return(nil, gerr.ErrNotFound).Once()

	c := NewRegistryCache(reg, Config{TTL: time.Minute})
	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Supplier(context.Background(), "FS")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Supplier(context.Background(), "AB")
	require.NoError(t, err)
	_, err = c.Supplier(context.Background(), "FS")
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestRegistryCacheInvalidate(t *testing.T) {
	reg := mocks.NewRegistry(t)
	reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{}, nil).Twice()
	reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{}, nil).Twice()

	c := NewRegistryCache(reg, Config{TTL: time.Hour})
	require.NoError(t, c.Warm(context.Background()))
	c.PutModel(model("SDF"))

	_, err := c.Model(context.Background(), "SDF")
	require.NoError(t, err)

	c.Invalidate()
	reg.On("GetBarcodeModelCode", mock.Anything, "SDF").Return(nil, gerr.ErrNotFound).Once()
	_, err = c.Model(context.Background(), "SDF")
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestRegistryCacheStoreFailure(t *testing.T) {
	reg := mocks.NewRegistry(t)
	reg.On("ListSupplierCodes", mock.Anything).Return(nil, errors.New("connection refused"))
	reg.On("ListBarcodeModelCodes", mock.Anything).Return(nil, errors.New("connection refused")).Maybe()
	reg.On("GetSupplierCode", mock.Anything, "FS").Return(nil, errors.New("connection refused"))

	c := NewRegistryCache(reg, Config{})
	assert.Error(t, c.Warm(context.Background()))

	_, err := c.Supplier(context.Background(), "FS")
	require.Error(t, err)
	assert.NotErrorIs(t, err, gerr.ErrNotFound)
}
