// Package codefmt holds the fixed-width field definitions, character classes and
// normalization rules shared by the SKU and barcode formats.
package codefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/asaskevich/govalidator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Barcode layout: AP + supplier(2) + year(1) + month(1) + model(3) + sequence(6).
const (
	BrandPrefix          = "AP"
	SupplierCodeLen      = 2
	YearCodeLen          = 1
	MonthCodeLen         = 1
	BarcodeModelCodeLen  = 3
	BarcodeSequenceWidth = 6
	BarcodeLen           = len(BrandPrefix) + SupplierCodeLen + YearCodeLen + MonthCodeLen + BarcodeModelCodeLen + BarcodeSequenceWidth
)

// SKU layout: BRAND-CATEGORY-SUBCATEGORY-ITEMTYPE-MODEL-SEQ.
const (
	SKUSeparator     = "-"
	SKUFieldCount    = 6
	SKUSequenceWidth = 3
	// NoSubcategoryCode fills the subcategory segment of products filed directly under a category.
	NoSubcategoryCode = "GEN"
)

// ReferenceYear is encoded as year code 'A'.
const ReferenceYear = 2024

type Class int

const (
	Letters Class = iota
	Digits
	Alphanumeric
)

func (c Class) String() string {
	switch c {
	case Letters:
		return "uppercase letters"
	case Digits:
		return "digits"
	default:
		return "uppercase letters or digits"
	}
}

// Rule describes one fixed or bounded width field.
type Rule struct {
	Field string
	Min   int
	Max   int
	Class Class
}

var (
	SupplierCodeRule     = Rule{Field: "supplier_code", Min: SupplierCodeLen, Max: SupplierCodeLen, Class: Letters}
	BarcodeModelCodeRule = Rule{Field: "model_code", Min: BarcodeModelCodeLen, Max: BarcodeModelCodeLen, Class: Letters}
	SKUModelCodeRule     = Rule{Field: "model_code", Min: 1, Max: 5, Class: Letters}
	BrandCodeRule        = Rule{Field: "brand", Min: 1, Max: 4, Class: Alphanumeric}
	CategoryCodeRule     = Rule{Field: "category", Min: 1, Max: 4, Class: Alphanumeric}
	SubcategoryCodeRule  = Rule{Field: "subcategory", Min: 1, Max: 4, Class: Alphanumeric}
	ItemTypeRule         = Rule{Field: "item_type", Min: 1, Max: 4, Class: Letters}
)

// Violation returns a description of why s breaks the rule, or "" when it conforms.
// s is expected to be normalized already.
func (r Rule) Violation(s string) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return "must not be empty"
	case r.Min == r.Max && n != r.Min:
		return fmt.Sprintf("must be exactly %d characters, got %d", r.Min, n)
	case n < r.Min || n > r.Max:
		return fmt.Sprintf("must be %d to %d characters, got %d", r.Min, r.Max, n)
	}
	if !hasClass(s, r.Class) {
		return fmt.Sprintf("must contain only %s", r.Class)
	}
	return ""
}

// Validate reports a rule violation as an InvalidInput error.
func (r Rule) Validate(s string) error {
	if msg := r.Violation(s); msg != "" {
		return gerr.InvalidInput(r.Field, "%q %s", s, msg)
	}
	return nil
}

func hasClass(s string, c Class) bool {
	if !govalidator.IsUpperCase(s) {
		return false
	}
	switch c {
	case Letters:
		return govalidator.IsAlpha(s)
	case Digits:
		return govalidator.IsNumeric(s)
	default:
		return govalidator.IsAlphanumeric(s)
	}
}

// Normalize trims, folds compatibility characters (full-width scanner output) and uppercases.
func Normalize(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	return cases.Upper(language.Und).String(s)
}

// MaxSequence is the largest value a zero-padded field of the given width can hold.
func MaxSequence(width int) int64 {
	m := int64(1)
	for i := 0; i < width; i++ {
		m *= 10
	}
	return m - 1
}

// PadSequence renders n zero-padded to width. Values that do not fit are an error, never truncated.
func PadSequence(n int64, width int) (string, error) {
	if n < 1 {
		return "", gerr.InvalidInput("sequence", "must be positive, got %d", n)
	}
	if n > MaxSequence(width) {
		return "", fmt.Errorf("%w: %d does not fit in %d digits", gerr.ErrSequenceExhausted, n, width)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}

// ParseSequence reads a zero-padded sequence field of exactly width digits.
// It returns a description of the problem instead of an error so callers can
// report it under their own taxonomy.
func ParseSequence(s string, width int) (int64, string) {
	if len(s) != width {
		return 0, fmt.Sprintf("must be exactly %d digits, got %d", width, len(s))
	}
	if !govalidator.IsNumeric(s) {
		return 0, "must contain only digits"
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err.Error()
	}
	if n < 1 {
		return 0, "must be positive"
	}
	return n, ""
}

// YearCode maps a calendar year onto 'A' (ReferenceYear) .. 'Z'.
func YearCode(year int) (byte, error) {
	off := year - ReferenceYear
	if off < 0 || off > 25 {
		return 0, gerr.InvalidInput("year", "%d is outside the encodable range %d-%d", year, ReferenceYear, ReferenceYear+25)
	}
	return byte('A' + off), nil
}

// YearFromCode is the inverse of YearCode.
func YearFromCode(c byte) (int, bool) {
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return ReferenceYear + int(c-'A'), true
}

// MonthCode maps January..December onto 'A'..'L'.
func MonthCode(m time.Month) (byte, error) {
	if m < time.January || m > time.December {
		return 0, gerr.InvalidInput("month", "%d is not a month", m)
	}
	return byte('A' + int(m) - 1), nil
}

// MonthFromCode is the inverse of MonthCode.
func MonthFromCode(c byte) (time.Month, bool) {
	if c < 'A' || c > 'L' {
		return 0, false
	}
	return time.Month(c-'A') + time.January, true
}

// DateCodes returns the year and month codes of t in UTC.
func DateCodes(t time.Time) (year byte, month byte, err error) {
	t = t.UTC()
	year, err = YearCode(t.Year())
	if err != nil {
		return 0, 0, err
	}
	month, err = MonthCode(t.Month())
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
