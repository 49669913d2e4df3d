// Package form holds the request bodies of the HTTP API and their validation.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	gerr "github.com/apexhome/products-manager/internal/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ValidateStruct works like validation.ValidateStruct but reports the first failing
// field, in field name order, as an InvalidInput error carrying the field name.
func ValidateStruct(structPtr interface{}, fields ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, fields...)
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		// internal errors of the rules themselves
		return err
	}
	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	field := keys[0]
	return gerr.InvalidInput(field, "%s", formatErrMsg(ve[field].Error()))
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}

// nonNegative checks a decimal amount.
func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return fmt.Errorf("must be an amount")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
