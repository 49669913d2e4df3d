package codefmt

import (
	"testing"
	"time"

	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarcodeLen(t *testing.T) {
	assert.Equal(t, 15, BarcodeLen)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  fs ":  "FS",
		"sdf":    "SDF",
		"ＡＢｃ１":   "ABC1",
		"":       "",
		"\t\n":   "",
		"Ap-1-x": "AP-1-X",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestRuleViolation(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		in   string
		ok   bool
	}{
		{"supplier ok", SupplierCodeRule, "FS", true},
		{"supplier short", SupplierCodeRule, "F", false},
		{"supplier long", SupplierCodeRule, "FSX", false},
		{"supplier digits", SupplierCodeRule, "F1", false},
		{"supplier lower", SupplierCodeRule, "fs", false},
		{"supplier empty", SupplierCodeRule, "", false},
		{"model ok", BarcodeModelCodeRule, "SDF", true},
		{"model two letters", BarcodeModelCodeRule, "SD", false},
		{"sku model one letter", SKUModelCodeRule, "A", true},
		{"sku model five letters", SKUModelCodeRule, "ABCDE", true},
		{"sku model six letters", SKUModelCodeRule, "ABCDEF", false},
		{"sku model digit", SKUModelCodeRule, "AB2", false},
		{"brand alnum", BrandCodeRule, "A1", true},
		{"brand punctuation", BrandCodeRule, "A-1", false},
		{"item type digits", ItemTypeRule, "12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.rule.Violation(tt.in)
			if tt.ok {
				assert.Empty(t, msg)
				assert.NoError(t, tt.rule.Validate(tt.in))
				return
			}
			assert.NotEmpty(t, msg)
			err := tt.rule.Validate(tt.in)
			assert.ErrorIs(t, err, gerr.ErrInvalidInput)
			assert.Equal(t, tt.rule.Field, gerr.Field(err))
		})
	}
}

func TestPadSequence(t *testing.T) {
	s, err := PadSequence(7, 3)
	require.NoError(t, err)
	assert.Equal(t, "007", s)

	s, err = PadSequence(999999, 6)
	require.NoError(t, err)
	assert.Equal(t, "999999", s)

	_, err = PadSequence(1000, 3)
	assert.ErrorIs(t, err, gerr.ErrSequenceExhausted)

	_, err = PadSequence(0, 3)
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
}

func TestParseSequence(t *testing.T) {
	n, msg := ParseSequence("000042", 6)
	assert.Empty(t, msg)
	assert.Equal(t, int64(42), n)

	for _, in := range []string{"42", "0000042", "00004A", "000000", "+00042"} {
		_, msg := ParseSequence(in, 6)
		assert.NotEmpty(t, msg, in)
	}
}

func TestMaxSequence(t *testing.T) {
	assert.Equal(t, int64(999), MaxSequence(SKUSequenceWidth))
	assert.Equal(t, int64(999999), MaxSequence(BarcodeSequenceWidth))
}

func TestYearCodes(t *testing.T) {
	c, err := YearCode(2024)
	require.NoError(t, err)
	assert.Equal(t, byte('A'), c)

	c, err = YearCode(2049)
	require.NoError(t, err)
	assert.Equal(t, byte('Z'), c)

	_, err = YearCode(2050)
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
	_, err = YearCode(2023)
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)

	for y := 2024; y <= 2049; y++ {
		c, err := YearCode(y)
		require.NoError(t, err)
		back, ok := YearFromCode(c)
		require.True(t, ok)
		assert.Equal(t, y, back)
	}
	_, ok := YearFromCode('1')
	assert.False(t, ok)
}

func TestMonthCodes(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		c, err := MonthCode(m)
		require.NoError(t, err)
		back, ok := MonthFromCode(c)
		require.True(t, ok)
		assert.Equal(t, m, back)
	}
	c, _ := MonthCode(time.December)
	assert.Equal(t, byte('L'), c)

	_, ok := MonthFromCode('M')
	assert.False(t, ok)
	_, err := MonthCode(13)
	assert.ErrorIs(t, err, gerr.ErrInvalidInput)
}

func TestDateCodesUseUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 2025-01-01 02:00 in UTC+5 is still December 2024 in UTC
	y, m, err := DateCodes(time.Date(2025, time.January, 1, 2, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, byte('A'), y)
	assert.Equal(t, byte('L'), m)
}
