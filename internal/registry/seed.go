package registry

import (
	"database/sql"
	"strings"
	"time"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

// SupplierEntry and ModelEntry are the file and wire form of registry rows.
type SupplierEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	VendorId *int32 `json:"vendor_id,omitempty"`
}

type ModelEntry struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	ProductSKU string `json:"product_sku,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

// Snapshot is a registry backup. It is also accepted as a seed, so a backup can be restored.
type Snapshot struct {
	TakenAt   time.Time       `json:"taken_at,omitempty"`
	Suppliers []SupplierEntry `json:"suppliers"`
	Models    []ModelEntry    `json:"models"`
}

func errRegistryFull(field string, n int) error {
	return gerr.InvalidInput(field, "no free code left for %d entries", n)
}

func supplierEntry(sc entity.SupplierCodeInsert) SupplierEntry {
	e := SupplierEntry{Code: sc.Code, Name: sc.Name}
	if sc.VendorId.Valid {
		id := sc.VendorId.Int32
		e.VendorId = &id
	}
	return e
}

func modelEntry(mc entity.BarcodeModelCodeInsert) ModelEntry {
	return ModelEntry{
		Code:       mc.Code,
		Name:       mc.Name,
		ProductSKU: mc.ProductSKU.String,
		ItemType:   mc.ItemType,
	}
}

// NewSnapshot converts the current registry rows.
func NewSnapshot(at time.Time, scs []entity.SupplierCode, mcs []entity.BarcodeModelCode) *Snapshot {
	s := &Snapshot{
		TakenAt:   at.UTC(),
		Suppliers: make([]SupplierEntry, 0, len(scs)),
		Models:    make([]ModelEntry, 0, len(mcs)),
	}
	for _, sc := range scs {
		s.Suppliers = append(s.Suppliers, supplierEntry(sc.SupplierCodeInsert))
	}
	for _, mc := range mcs {
		s.Models = append(s.Models, modelEntry(mc.BarcodeModelCodeInsert))
	}
	return s
}

// SnapshotOf converts a seed for display.
func SnapshotOf(seed *entity.RegistrySeed) *Snapshot {
	s := &Snapshot{
		Suppliers: make([]SupplierEntry, 0, len(seed.Suppliers)),
		Models:    make([]ModelEntry, 0, len(seed.Models)),
	}
	for _, sc := range seed.Suppliers {
		s.Suppliers = append(s.Suppliers, supplierEntry(sc))
	}
	for _, mc := range seed.Models {
		s.Models = append(s.Models, modelEntry(mc))
	}
	return s
}

func normalizeSupplier(code, name string, vendorId sql.NullInt32) (entity.SupplierCodeInsert, error) {
	code = codefmt.Normalize(code)
	if err := codefmt.SupplierCodeRule.Validate(code); err != nil {
		return entity.SupplierCodeInsert{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.SupplierCodeInsert{}, gerr.InvalidInput("name", "must not be empty")
	}
	return entity.SupplierCodeInsert{Code: code, Name: name, VendorId: vendorId}, nil
}

func normalizeModel(code, name, productSKU, itemType string) (entity.BarcodeModelCodeInsert, error) {
	code = codefmt.Normalize(code)
	if err := codefmt.BarcodeModelCodeRule.Validate(code); err != nil {
		return entity.BarcodeModelCodeInsert{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.BarcodeModelCodeInsert{}, gerr.InvalidInput("name", "must not be empty")
	}
	mc := entity.BarcodeModelCodeInsert{Code: code, Name: name}
	if productSKU = codefmt.Normalize(productSKU); productSKU != "" {
		mc.ProductSKU = sql.NullString{String: productSKU, Valid: true}
	}
	if itemType = codefmt.Normalize(itemType); itemType != "" {
		if err := codefmt.ItemTypeRule.Validate(itemType); err != nil {
			return entity.BarcodeModelCodeInsert{}, err
		}
		mc.ItemType = itemType
	}
	return mc, nil
}

// Seed validates and normalizes the snapshot into a registry seed.
// Codes repeated within the snapshot, in any case, are rejected.
func (s *Snapshot) Seed() (*entity.RegistrySeed, error) {
	seed := &entity.RegistrySeed{}
	seen := make(map[string]bool, len(s.Suppliers))
	for _, e := range s.Suppliers {
		var vid sql.NullInt32
		if e.VendorId != nil {
			vid = sql.NullInt32{Int32: *e.VendorId, Valid: true}
		}
		sc, err := normalizeSupplier(e.Code, e.Name, vid)
		if err != nil {
			return nil, err
		}
		if seen[sc.Code] {
			return nil, gerr.Duplicate("supplier_code", "%q appears more than once", sc.Code)
		}
		seen[sc.Code] = true
		seed.Suppliers = append(seed.Suppliers, sc)
	}

	seen = make(map[string]bool, len(s.Models))
	products := make(map[string]bool, len(s.Models))
	for _, e := range s.Models {
		mc, err := normalizeModel(e.Code, e.Name, e.ProductSKU, e.ItemType)
		if err != nil {
			return nil, err
		}
		if seen[mc.Code] {
			return nil, gerr.Duplicate("model_code", "%q appears more than once", mc.Code)
		}
		if mc.ProductSKU.Valid {
			if products[mc.ProductSKU.String] {
				return nil, gerr.Duplicate("product_sku", "%q has more than one model code", mc.ProductSKU.String)
			}
			products[mc.ProductSKU.String] = true
		}
		seen[mc.Code] = true
		seed.Models = append(seed.Models, mc)
	}
	return seed, nil
}
