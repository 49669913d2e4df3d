package serialization

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/allocator"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/apexhome/products-manager/internal/cache"
	"github.com/apexhome/products-manager/internal/dependency/mocks"
	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/apexhome/products-manager/internal/labels"
	"github.com/apexhome/products-manager/internal/lock"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/apexhome/products-manager/internal/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const receiptId = "0b7c8ad1-3c70-4b8e-9a43-6c1f6a1d2f11"

type fixture struct {
	h       http.Handler
	reg     *mocks.Registry
	serial  *mocks.SerialItems
	archive *mocks.FileStore
	token   string
}

func newFixture(t *testing.T, rc ratelimit.Config, withArchive bool) *fixture {
	f := &fixture{
		reg:    mocks.NewRegistry(t),
		serial: mocks.NewSerialItems(t),
	}
	rep := mocks.NewRepository(t)
	rep.On("Registry").Return(f.reg).Maybe()
	rep.On("SerialItems").Return(f.serial).Maybe()

	f.reg.On("ListSupplierCodes", mock.Anything).Return([]entity.SupplierCode{
		{Id: 1, SupplierCodeInsert: entity.SupplierCodeInsert{Code: "FS", Name: "Fabric Studio"}},
	}, nil).Maybe()
	f.reg.On("ListBarcodeModelCodes", mock.Anything).Return([]entity.BarcodeModelCode{
		{Id: 1, BarcodeModelCodeInsert: entity.BarcodeModelCodeInsert{Code: "SDF", Name: "Sofa"}},
	}, nil).Maybe()
	f.reg.On("GetSupplierCode", mock.Anything, "ZZ").Return(nil, gerr.ErrNotFound).Maybe()

	svc := registry.New(rep, cache.NewRegistryCache(f.reg, cache.Config{}), lock.NewLocal(), nil)
	eng := engine.New(rep, allocator.NewMemory(), svc, nil)

	rl := ratelimit.NewMultiKeyLimiter(rc)
	t.Cleanup(rl.Stop)

	ja, err := jwt.New(&jwt.Config{JWTSecret: strings.Repeat("s", 32)})
	require.NoError(t, err)
	f.token, err = jwt.NewToken(ja, time.Hour, "ops")
	require.NoError(t, err)
	admin := func(next http.Handler) http.Handler {
		return jwtauth.Verifier(ja)(jwtauth.Authenticator(next))
	}

	var srv *Server
	if withArchive {
		f.archive = mocks.NewFileStore(t)
		srv = New(eng, svc, f.archive, rl)
	} else {
		srv = New(eng, svc, nil, rl)
	}
	r := chi.NewRouter()
	r.Mount("/api/serialization", srv.Routes(admin))
	f.h = r
	return f
}

func (f *fixture) do(method, path, body string, auth bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	f.h.ServeHTTP(w, req)
	return w
}

func TestValidate(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, false)
	f.serial.On("GetSerialItemByBarcode", mock.Anything, "APFSAASDF000001").Return(nil, gerr.ErrNotFound).Maybe()

	tests := []struct {
		name    string
		barcode string
		valid   bool
		outcome string
		field   string
	}{
		{"valid", "apfsaasdf000001", true, "valid", ""},
		{"unregistered supplier", "APZZAASDF000001", false, "not_registered", "supplier_code"},
		{"too short", "APFSAASDF01", false, "malformed", ""},
		{"bad month", "APFSAZSDF000001", false, "malformed", "month"},
		{"empty", "", false, "empty", ""},
		{"whitespace", "%20%20", false, "empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodGet, "/api/serialization/validate/"+tt.barcode, "", false)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var res ValidationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.field, res.Field)
		})
	}

	w := f.do(http.MethodGet, "/api/serialization/validate", "", false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var empty ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Equal(t, "empty", empty.Outcome)
	assert.Nil(t, empty.Item)

	w = f.do(http.MethodGet, "/api/serialization/validate/APFSAASDF000001", "", false)
	var res ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Item)
	assert.Equal(t, "APFSAASDF000001", res.Item.Barcode)
	assert.Equal(t, "Fabric Studio", res.Item.SupplierName)
	assert.Equal(t, 2024, res.Item.Year)
	assert.Equal(t, 1, res.Item.Month)
	assert.Equal(t, int64(1), res.Item.Sequence)
	assert.Nil(t, res.Item.Unit)
	assert.Contains(t, w.Body.String(), `"item":{`)

	w = f.do(http.MethodGet, "/api/serialization/validate/APZZAASDF000001", "", false)
	var unreg ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unreg))
	require.NotNil(t, unreg.Item)
	assert.Equal(t, "ZZ", unreg.Item.SupplierCode)
	assert.Empty(t, unreg.Item.SupplierName)

	w = f.do(http.MethodGet, "/api/serialization/validate/APFSAASDF01", "", false)
	var malformed ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &malformed))
	assert.Nil(t, malformed.Item)
}

func TestValidateRateLimit(t *testing.T) {
	f := newFixture(t, ratelimit.Config{ValidatePerMinute: 2}, false)

	for i := 0; i < 2; i++ {
		w := f.do(http.MethodGet, "/api/serialization/validate/BAD", "", false)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := f.do(http.MethodGet, "/api/serialization/validate/BAD", "", false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestReceiveGoods(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, false)
	f.serial.On("AddSerialItems", mock.Anything, mock.MatchedBy(func(items []entity.SerialItemInsert) bool {
		return len(items) == 3 && items[2].Barcode == "APFSAASDF000003"
	})).Return(nil).Once()

	body := `{"supplier_code":"fs","model_code":"sdf","quantity":3,"unit_cost":"12.50","received_at":"2024-01-10T08:00:00Z"}`
	w := f.do(http.MethodPost, "/api/serialization/receipts", body, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res ReceiptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Units, 3)
	assert.NotEmpty(t, res.Id)
	assert.Equal(t, "APFSAASDF000001", res.Units[0].Barcode)
	assert.True(t, decimal.RequireFromString("12.5").Equal(res.Units[0].UnitCost))

	t.Run("too many units", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/serialization/receipts",
			`{"supplier_code":"FS","model_code":"SDF","quantity":501,"unit_cost":"1"}`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"quantity"`)
	})

	t.Run("unregistered supplier", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/serialization/receipts",
			`{"supplier_code":"ZZ","model_code":"SDF","quantity":1,"unit_cost":"1"}`, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func receiptItems() []entity.SerialItem {
	return []entity.SerialItem{{
		Id: 1,
		SerialItemInsert: entity.SerialItemInsert{
			Barcode:      "APFSAASDF000001",
			ReceiptId:    receiptId,
			SupplierCode: "FS",
			ModelCode:    "SDF",
			UnitCost:     decimal.NewFromInt(12),
			ReceivedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}}
}

func TestGetReceipt(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, false)
	f.serial.On("GetSerialItemsByReceipt", mock.Anything, receiptId).Return(receiptItems(), nil).Once()

	w := f.do(http.MethodGet, "/api/serialization/receipts/"+receiptId, "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "APFSAASDF000001")

	w = f.do(http.MethodGet, "/api/serialization/receipts/not-a-receipt", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLabels(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, true)
	f.serial.On("GetSerialItemsByReceipt", mock.Anything, receiptId).Return(receiptItems(), nil).Once()
	f.archive.On("Upload", mock.Anything, "labels/"+receiptId+".xlsx", mock.Anything, mock.Anything, labels.ContentType).
		Return("https://s3.local/labels/"+receiptId+".xlsx", nil).Once()

	w := f.do(http.MethodGet, "/api/serialization/receipts/"+receiptId+"/labels", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, labels.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "https://s3.local/labels/"+receiptId+".xlsx", w.Header().Get("X-Archive-Location"))
	assert.NotZero(t, w.Body.Len())
}

func TestRegistryAdmin(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, false)

	w := f.do(http.MethodPost, "/api/serialization/suppliers", `{"code":"KT","name":"Kettle Co"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	f.reg.On("GetSupplierCode", mock.Anything, "KT").Return(nil, gerr.ErrNotFound).Once()
	f.reg.On("AddSupplierCode", mock.Anything, mock.Anything).Return(9, nil).Once()
	w = f.do(http.MethodPost, "/api/serialization/suppliers", `{"code":"kt","name":"Kettle Co"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sc SupplierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sc))
	assert.Equal(t, 9, sc.Id)
	assert.Equal(t, "KT", sc.Code)

	f.reg.On("GetSupplierCode", mock.Anything, "FS").Return(&entity.SupplierCode{Id: 1}, nil).Once()
	w = f.do(http.MethodPost, "/api/serialization/suppliers", `{"code":"FS","name":"Again"}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(http.MethodGet, "/api/serialization/models", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SDF"`)
}

func TestSeedCodes(t *testing.T) {
	f := newFixture(t, ratelimit.Config{}, false)

	w := f.do(http.MethodPost, "/api/serialization/seed-codes", `{"suppliers":[{"code":"FS","name":"Fabric Studio"}]}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "confirmation required")

	w = f.do(http.MethodPost, "/api/serialization/seed-codes",
		`{"dry_run":true,"suppliers":[{"code":"fs","name":"Fabric Studio"}],"models":[{"code":"sdf","name":"Sofa"}]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var snap registry.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Suppliers, 1)
	assert.Equal(t, "FS", snap.Suppliers[0].Code)

	w = f.do(http.MethodGet, "/api/serialization/backups", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
