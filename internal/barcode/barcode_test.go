package barcode

import (
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	bc, err := Compose(entity.BarcodeFields{
		SupplierCode: "FS",
		Year:         2024,
		Month:        time.January,
		ModelCode:    "SDF",
		Sequence:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, "APFSAASDF000001", bc)
	assert.Len(t, bc, codefmt.BarcodeLen)

	bc, err = Compose(entity.BarcodeFields{
		SupplierCode: "ZZ",
		Year:         2049,
		Month:        time.December,
		ModelCode:    "XYZ",
		Sequence:     999999,
	})
	require.NoError(t, err)
	assert.Equal(t, "APZZZLXYZ999999", bc)
}

func TestComposeRejects(t *testing.T) {
	valid := entity.BarcodeFields{SupplierCode: "FS", Year: 2025, Month: time.March, ModelCode: "SDF", Sequence: 1}

	tests := []struct {
		name string
		edit func(f *entity.BarcodeFields)
		kind error
	}{
		{"supplier too long", func(f *entity.BarcodeFields) { f.SupplierCode = "FSX" }, gerr.ErrInvalidInput},
		{"model too short", func(f *entity.BarcodeFields) { f.ModelCode = "SD" }, gerr.ErrInvalidInput},
		{"model with digit", func(f *entity.BarcodeFields) { f.ModelCode = "SD1" }, gerr.ErrInvalidInput},
		{"year before range", func(f *entity.BarcodeFields) { f.Year = 2023 }, gerr.ErrInvalidInput},
		{"year after range", func(f *entity.BarcodeFields) { f.Year = 2050 }, gerr.ErrInvalidInput},
		{"sequence overflow", func(f *entity.BarcodeFields) { f.Sequence = 1000000 }, gerr.ErrSequenceExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.edit(&f)
			_, err := Compose(f)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		in := entity.BarcodeFields{SupplierCode: "QK", Year: 2031, Month: m, ModelCode: "MIX", Sequence: int64(m) * 1234}
		bc, err := Compose(in)
		require.NoError(t, err)
		require.Len(t, bc, codefmt.BarcodeLen)

		out, err := Parse(bc)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		kind  error
		field string
	}{
		{"empty", "", gerr.ErrEmptyInput, ""},
		{"whitespace", "   \t", gerr.ErrEmptyInput, ""},
		{"14 chars", "APFSAASDF00000", gerr.ErrMalformedBarcode, ""},
		{"16 chars", "APFSAASDF0000011", gerr.ErrMalformedBarcode, ""},
		{"wrong prefix", "XXFSAASDF000001", gerr.ErrMalformedBarcode, "prefix"},
		{"digit in supplier", "APF1AASDF000001", gerr.ErrMalformedBarcode, "supplier_code"},
		{"digit as year", "APFS1ASDF000001", gerr.ErrMalformedBarcode, "year"},
		{"month past december", "APFSAMSDF000001", gerr.ErrMalformedBarcode, "month"},
		{"digit in model", "APFSAAS1F000001", gerr.ErrMalformedBarcode, "model_code"},
		{"letter in sequence", "APFSAASDF00000A", gerr.ErrMalformedBarcode, "sequence"},
		{"zero sequence", "APFSAASDF000000", gerr.ErrMalformedBarcode, "sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.field, gerr.Field(err))
		})
	}
}

func TestParseNormalizes(t *testing.T) {
	want := entity.BarcodeFields{SupplierCode: "FS", Year: 2024, Month: time.January, ModelCode: "SDF", Sequence: 1}

	f, err := Parse(" apfsaasdf000001\n")
	require.NoError(t, err)
	assert.Equal(t, want, f)

	// full-width scanner output
	f, err = Parse("ＡＰＦＳＡＡＳＤＦ０００００１")
	require.NoError(t, err)
	assert.Equal(t, want, f)
}

func TestBucket(t *testing.T) {
	b, err := Bucket("FS", "SDF", time.Date(2025, time.February, 28, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, entity.BucketBarcode, b.Kind)
	assert.Equal(t, "FSBBSDF", b.Key)
	assert.Equal(t, int64(999999), b.Limit)

	other, err := Bucket("FS", "SDF", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEqual(t, b.Key, other.Key)

	_, err = Bucket("F", "SDF", time.Now())
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
}
