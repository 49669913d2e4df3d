package registry

import (
	"database/sql"
	"strings"
	"unicode"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	"golang.org/x/exp/slices"
)

// letters returns the ASCII letters of s, normalized and uppercased.
func letters(s string) []byte {
	s = codefmt.Normalize(s)
	var b []byte
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b = append(b, byte(r))
		}
	}
	return b
}

// initials returns the first letter of every word of s.
func initials(s string) []byte {
	var b []byte
	for _, w := range strings.Fields(s) {
		if l := letters(w); len(l) > 0 {
			b = append(b, l[0])
		}
	}
	return b
}

// candidates lists codes of length n derived from name in order of preference:
// the leading letters, the initials, then the first letter followed by any later letters.
func candidates(name string, n int) []string {
	var out []string
	add := func(c string) {
		if len(c) == n && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	ls := letters(name)
	if len(ls) >= n {
		add(string(ls[:n]))
	}
	if in := initials(name); len(in) >= n {
		add(string(in[:n]))
	}
	if len(ls) == 0 {
		return out
	}

	// first letter kept, the rest picked in order
	var pick func(start int, acc []byte)
	pick = func(start int, acc []byte) {
		if len(acc) == n {
			add(string(acc))
			return
		}
		for i := start; i < len(ls); i++ {
			pick(i+1, append(acc, ls[i]))
		}
	}
	pick(1, []byte{ls[0]})
	return out
}

// sequential enumerates AA..ZZ (or AAA..ZZZ) and returns the first code not in used.
func sequential(n int, used map[string]bool) (string, bool) {
	code := make([]byte, n)
	for i := range code {
		code[i] = 'A'
	}
	for {
		if !used[string(code)] {
			return string(code), true
		}
		i := n - 1
		for i >= 0 && code[i] == 'Z' {
			code[i] = 'A'
			i--
		}
		if i < 0 {
			return "", false
		}
		code[i]++
	}
}

func pickCode(name string, n int, used map[string]bool) (string, bool) {
	for _, c := range candidates(name, n) {
		if !used[c] {
			return c, true
		}
	}
	return sequential(n, used)
}

// DeriveSeed builds a fresh registry from vendor and product names.
// Vendors and products are taken in id order so the result is deterministic.
func DeriveSeed(vendors []entity.Vendor, products []entity.Product) (*entity.RegistrySeed, error) {
	vendors = slices.Clone(vendors)
	slices.SortFunc(vendors, func(a, b entity.Vendor) int { return a.Id - b.Id })
	products = slices.Clone(products)
	slices.SortFunc(products, func(a, b entity.Product) int { return a.Id - b.Id })

	seed := &entity.RegistrySeed{}

	used := make(map[string]bool, len(vendors))
	for _, v := range vendors {
		code, ok := pickCode(v.Name, codefmt.SupplierCodeLen, used)
		if !ok {
			return nil, errRegistryFull("supplier_code", len(vendors))
		}
		used[code] = true
		seed.Suppliers = append(seed.Suppliers, entity.SupplierCodeInsert{
			Code:     code,
			Name:     v.Name,
			VendorId: sql.NullInt32{Int32: int32(v.Id), Valid: true},
		})
	}

	used = make(map[string]bool, len(products))
	for _, p := range products {
		code, ok := pickCode(p.Name, codefmt.BarcodeModelCodeLen, used)
		if !ok {
			return nil, errRegistryFull("model_code", len(products))
		}
		used[code] = true
		seed.Models = append(seed.Models, entity.BarcodeModelCodeInsert{
			Code:       code,
			Name:       p.Name,
			ProductSKU: sql.NullString{String: p.SKU, Valid: true},
			ItemType:   p.ItemType,
		})
	}
	return seed, nil
}
