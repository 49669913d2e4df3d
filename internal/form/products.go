package form

import (
	"database/sql"

	"github.com/apexhome/products-manager/internal/entity"
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// NextSKURequest previews a SKU, or commits one when Commit is set.
type NextSKURequest struct {
	BrandId       int    `json:"brand_id"`
	CategoryId    int    `json:"category_id"`
	SubcategoryId *int32 `json:"subcategory_id,omitempty"`
	ItemType      string `json:"item_type"`
	ModelCode     string `json:"model_code"`
	Commit        bool   `json:"commit"`
}

func (r *NextSKURequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.BrandId, v.Required, v.Min(1)),
		v.Field(&r.CategoryId, v.Required, v.Min(1)),
		v.Field(&r.SubcategoryId, v.Min(int32(1))),
		v.Field(&r.ItemType, v.Required),
		v.Field(&r.ModelCode, v.Required),
	)
}

func (r *NextSKURequest) SKURequest() *entity.SKURequest {
	req := &entity.SKURequest{
		HierarchyKey: entity.HierarchyKey{
			BrandId:    r.BrandId,
			CategoryId: r.CategoryId,
			ItemType:   r.ItemType,
		},
		ModelCode: r.ModelCode,
	}
	if r.SubcategoryId != nil {
		req.SubcategoryId = sql.NullInt32{Int32: *r.SubcategoryId, Valid: true}
	}
	return req
}

type CreateProductRequest struct {
	BrandId       int             `json:"brand_id"`
	CategoryId    int             `json:"category_id"`
	SubcategoryId *int32          `json:"subcategory_id,omitempty"`
	ItemType      string          `json:"item_type"`
	ModelCode     string          `json:"model_code"`
	Name          string          `json:"name"`
	MRP           decimal.Decimal `json:"mrp"`
}

func (r *CreateProductRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.BrandId, v.Required, v.Min(1)),
		v.Field(&r.CategoryId, v.Required, v.Min(1)),
		v.Field(&r.SubcategoryId, v.Min(int32(1))),
		v.Field(&r.ItemType, v.Required),
		v.Field(&r.ModelCode, v.Required),
		v.Field(&r.Name, v.Required, v.Length(1, 255)),
		v.Field(&r.MRP, v.By(nonNegative)),
	)
}

func (r *CreateProductRequest) ProductNew() *entity.ProductNew {
	sr := (&NextSKURequest{
		BrandId:       r.BrandId,
		CategoryId:    r.CategoryId,
		SubcategoryId: r.SubcategoryId,
		ItemType:      r.ItemType,
		ModelCode:     r.ModelCode,
	}).SKURequest()
	return &entity.ProductNew{
		SKURequest: *sr,
		Name:       r.Name,
		MRP:        r.MRP,
	}
}
