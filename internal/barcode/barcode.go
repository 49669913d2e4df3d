// Package barcode composes and parses the fixed 15 character serial barcode:
// AP + supplier(2) + year(1) + month(1) + model(3) + sequence(6), no delimiters.
package barcode

import (
	"fmt"
	"strings"
	"time"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

// field offsets inside a barcode
const (
	supplierStart = len(codefmt.BrandPrefix)
	yearPos       = supplierStart + codefmt.SupplierCodeLen
	monthPos      = yearPos + codefmt.YearCodeLen
	modelStart    = monthPos + codefmt.MonthCodeLen
	seqStart      = modelStart + codefmt.BarcodeModelCodeLen
)

// BucketKey is the per (supplier, model, year, month) sequence scope.
func BucketKey(supplier, model string, year, month byte) string {
	return fmt.Sprintf("%s%c%c%s", supplier, year, month, model)
}

// Bucket returns the sequence bucket units of supplier/model received at t are numbered in.
func Bucket(supplier, model string, t time.Time) (entity.Bucket, error) {
	if err := codefmt.SupplierCodeRule.Validate(supplier); err != nil {
		return entity.Bucket{}, err
	}
	if err := codefmt.BarcodeModelCodeRule.Validate(model); err != nil {
		return entity.Bucket{}, err
	}
	y, m, err := codefmt.DateCodes(t)
	if err != nil {
		return entity.Bucket{}, err
	}
	return entity.Bucket{
		Kind:  entity.BucketBarcode,
		Key:   BucketKey(supplier, model, y, m),
		Limit: codefmt.MaxSequence(codefmt.BarcodeSequenceWidth),
	}, nil
}

// Compose renders the barcode of f. It performs no I/O.
func Compose(f entity.BarcodeFields) (string, error) {
	if err := codefmt.SupplierCodeRule.Validate(f.SupplierCode); err != nil {
		return "", err
	}
	if err := codefmt.BarcodeModelCodeRule.Validate(f.ModelCode); err != nil {
		return "", err
	}
	y, err := codefmt.YearCode(f.Year)
	if err != nil {
		return "", err
	}
	m, err := codefmt.MonthCode(f.Month)
	if err != nil {
		return "", err
	}
	seq, err := codefmt.PadSequence(f.Sequence, codefmt.BarcodeSequenceWidth)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(codefmt.BarcodeLen)
	sb.WriteString(codefmt.BrandPrefix)
	sb.WriteString(f.SupplierCode)
	sb.WriteByte(y)
	sb.WriteByte(m)
	sb.WriteString(f.ModelCode)
	sb.WriteString(seq)
	return sb.String(), nil
}

// Parse decodes a scanned barcode. raw is normalized first, so lower case and
// full-width scanner output decode the same as the canonical form.
//
// Empty input fails with ErrEmptyInput, everything structurally wrong with ErrMalformedBarcode.
// Parse never consults the registries.
func Parse(raw string) (entity.BarcodeFields, error) {
	s := codefmt.Normalize(raw)
	if s == "" {
		return entity.BarcodeFields{}, fmt.Errorf("%w: barcode is empty", gerr.ErrEmptyInput)
	}
	if len(s) != codefmt.BarcodeLen {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("", "must be exactly %d characters, got %d",
			codefmt.BarcodeLen, len([]rune(s)))
	}
	if !strings.HasPrefix(s, codefmt.BrandPrefix) {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("prefix", "must start with %q, got %q",
			codefmt.BrandPrefix, s[:supplierStart])
	}

	supplier := s[supplierStart:yearPos]
	if msg := codefmt.SupplierCodeRule.Violation(supplier); msg != "" {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("supplier_code", "%q %s", supplier, msg)
	}
	year, ok := codefmt.YearFromCode(s[yearPos])
	if !ok {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("year", "%q is not a year code", s[yearPos])
	}
	month, ok := codefmt.MonthFromCode(s[monthPos])
	if !ok {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("month", "%q is not a month code (A-L)", s[monthPos])
	}
	model := s[modelStart:seqStart]
	if msg := codefmt.BarcodeModelCodeRule.Violation(model); msg != "" {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("model_code", "%q %s", model, msg)
	}
	seq, msg := codefmt.ParseSequence(s[seqStart:], codefmt.BarcodeSequenceWidth)
	if msg != "" {
		return entity.BarcodeFields{}, gerr.MalformedBarcode("sequence", "%q %s", s[seqStart:], msg)
	}

	return entity.BarcodeFields{
		SupplierCode: supplier,
		Year:         year,
		Month:        month,
		ModelCode:    model,
		Sequence:     seq,
	}, nil
}

// Canonical returns the normalized form of a scanned barcode without validating it.
func Canonical(raw string) string {
	return codefmt.Normalize(raw)
}
