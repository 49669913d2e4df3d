package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Brand, Category, Subcategory and ItemType are consumed read-only to mint SKUs.
type Brand struct {
	Id   int    `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

type Category struct {
	Id   int    `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

type Subcategory struct {
	Id         int    `db:"id"`
	CategoryId int    `db:"category_id"`
	Code       string `db:"code"`
	Name       string `db:"name"`
}

type ItemType struct {
	Code string `db:"code"`
	Name string `db:"name"`
}

// HierarchyKey identifies a product classification by ids.
type HierarchyKey struct {
	BrandId       int
	CategoryId    int
	SubcategoryId sql.NullInt32
	ItemType      string
}

// HierarchyCodes are the resolved short codes of a HierarchyKey.
type HierarchyCodes struct {
	Brand       string
	Category    string
	Subcategory string
	ItemType    string
}

// SKURequest is what the product form sends while the user fills in the classification.
type SKURequest struct {
	HierarchyKey
	// ModelCode is the free-form 1..5 letter model component of the SKU.
	ModelCode string
}

// SKUResult is a composed SKU. Tentative results were composed against the
// next value without allocating it.
type SKUResult struct {
	SKU       string
	ModelCode string
	Sequence  int64
	Tentative bool
}

type ProductInsert struct {
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	BrandId       int             `db:"brand_id"`
	CategoryId    int             `db:"category_id"`
	SubcategoryId sql.NullInt32   `db:"subcategory_id"`
	ItemType      string          `db:"item_type"`
	ModelCode     string          `db:"model_code"`
	MRP           decimal.Decimal `db:"mrp"`
}

type Product struct {
	Id        int          `db:"id"`
	CreatedAt time.Time    `db:"created_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
	ProductInsert
}

// ProductNew is a product as submitted on save, before its SKU is committed.
type ProductNew struct {
	SKURequest
	Name string
	MRP  decimal.Decimal
}

// Vendor is consumed read-only when deriving supplier codes.
type Vendor struct {
	Id   int    `db:"id"`
	Name string `db:"name"`
}
