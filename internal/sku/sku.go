// Package sku composes and parses product SKUs of the form
// BRAND-CATEGORY-SUBCATEGORY-ITEMTYPE-MODEL-SEQ.
package sku

import (
	"fmt"
	"strings"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

// Components are the fields of a SKU.
type Components struct {
	Brand       string
	Category    string
	Subcategory string
	ItemType    string
	// Model is the 1..5 letter SKU model, not the registered barcode model code.
	Model    string
	Sequence int64
}

var prefixRules = []codefmt.Rule{
	codefmt.BrandCodeRule,
	codefmt.CategoryCodeRule,
	codefmt.SubcategoryCodeRule,
	codefmt.ItemTypeRule,
	codefmt.SKUModelCodeRule,
}

// FromCodes builds the components of a SKU from resolved hierarchy codes.
func FromCodes(h entity.HierarchyCodes, model string) Components {
	return Components{
		Brand:       h.Brand,
		Category:    h.Category,
		Subcategory: h.Subcategory,
		ItemType:    h.ItemType,
		Model:       model,
	}
}

func (c Components) prefixFields() []string {
	return []string{c.Brand, c.Category, c.Subcategory, c.ItemType, c.Model}
}

// Validate checks every field except the sequence.
func (c Components) Validate() error {
	for i, f := range c.prefixFields() {
		if err := prefixRules[i].Validate(f); err != nil {
			return err
		}
	}
	return nil
}

// Prefix is the SKU without its sequence. It doubles as the sequence bucket key.
func (c Components) Prefix() string {
	return strings.Join(c.prefixFields(), codefmt.SKUSeparator)
}

// Bucket is the sequence bucket the SKU numbers are drawn from.
func (c Components) Bucket() entity.Bucket {
	return entity.Bucket{
		Kind:  entity.BucketSKU,
		Key:   c.Prefix(),
		Limit: codefmt.MaxSequence(codefmt.SKUSequenceWidth),
	}
}

// Compose renders the canonical SKU. It performs no I/O.
func Compose(c Components) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	seq, err := codefmt.PadSequence(c.Sequence, codefmt.SKUSequenceWidth)
	if err != nil {
		return "", err
	}
	return c.Prefix() + codefmt.SKUSeparator + seq, nil
}

// Parse decomposes a SKU. The input is normalized first so a SKU typed in lower case parses.
func Parse(s string) (Components, error) {
	s = codefmt.Normalize(s)
	if s == "" {
		return Components{}, fmt.Errorf("%w: sku is empty", gerr.ErrEmptyInput)
	}
	parts := strings.Split(s, codefmt.SKUSeparator)
	if len(parts) != codefmt.SKUFieldCount {
		return Components{}, gerr.MalformedSku("", "expected %d fields separated by %q, got %d",
			codefmt.SKUFieldCount, codefmt.SKUSeparator, len(parts))
	}
	for i, rule := range prefixRules {
		if msg := rule.Violation(parts[i]); msg != "" {
			return Components{}, gerr.MalformedSku(rule.Field, "%q %s", parts[i], msg)
		}
	}
	seq, msg := codefmt.ParseSequence(parts[5], codefmt.SKUSequenceWidth)
	if msg != "" {
		return Components{}, gerr.MalformedSku("sequence", "%q %s", parts[5], msg)
	}
	return Components{
		Brand:       parts[0],
		Category:    parts[1],
		Subcategory: parts[2],
		ItemType:    parts[3],
		Model:       parts[4],
		Sequence:    seq,
	}, nil
}
