package form

import (
	"database/sql"
	"time"

	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/entity"
	"github.com/apexhome/products-manager/internal/registry"
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type RegisterSupplierRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	VendorId *int32 `json:"vendor_id,omitempty"`
}

func (r *RegisterSupplierRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Code, v.Required),
		v.Field(&r.Name, v.Required, v.Length(1, 255)),
		v.Field(&r.VendorId, v.Min(int32(1))),
	)
}

func (r *RegisterSupplierRequest) Vendor() sql.NullInt32 {
	if r.VendorId == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *r.VendorId, Valid: true}
}

type RegisterModelRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	ProductSKU string `json:"product_sku,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

func (r *RegisterModelRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Code, v.Required),
		v.Field(&r.Name, v.Required, v.Length(1, 255)),
		v.Field(&r.ProductSKU, v.Length(0, 64)),
	)
}

type ReceiveGoodsRequest struct {
	SupplierCode string          `json:"supplier_code"`
	ModelCode    string          `json:"model_code"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReceivedAt   *time.Time      `json:"received_at,omitempty"`
}

func (r *ReceiveGoodsRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.SupplierCode, v.Required),
		v.Field(&r.ModelCode, v.Required),
		v.Field(&r.Quantity, v.Required, v.Min(1), v.Max(engine.MaxReceiptUnits)),
		v.Field(&r.UnitCost, v.By(nonNegative)),
	)
}

func (r *ReceiveGoodsRequest) GoodsReceiptNew() *entity.GoodsReceiptNew {
	gr := &entity.GoodsReceiptNew{
		SupplierCode: r.SupplierCode,
		ModelCode:    r.ModelCode,
		Quantity:     r.Quantity,
		UnitCost:     r.UnitCost,
	}
	if r.ReceivedAt != nil {
		gr.ReceivedAt = *r.ReceivedAt
	}
	return gr
}

// SeedCodesRequest replaces both registries, either with the given codes or with
// codes derived from vendor and product names.
type SeedCodesRequest struct {
	Confirm   bool                     `json:"confirm"`
	Derive    bool                     `json:"derive"`
	DryRun    bool                     `json:"dry_run"`
	Suppliers []registry.SupplierEntry `json:"suppliers,omitempty"`
	Models    []registry.ModelEntry    `json:"models,omitempty"`
}

func (r *SeedCodesRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Suppliers, v.When(r.Derive, v.Empty)),
		v.Field(&r.Models, v.When(r.Derive, v.Empty)),
	)
}

func (r *SeedCodesRequest) ReseedRequest() *registry.ReseedRequest {
	req := &registry.ReseedRequest{Derive: r.Derive, Confirm: r.Confirm}
	if !r.Derive {
		req.Seed = &registry.Snapshot{Suppliers: r.Suppliers, Models: r.Models}
	}
	return req
}
