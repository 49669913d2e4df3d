package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// BarcodeFields is the decoded content of a barcode.
type BarcodeFields struct {
	SupplierCode string
	Year         int
	Month        time.Month
	ModelCode    string
	Sequence     int64
}

type SerialItemInsert struct {
	Barcode      string          `db:"barcode"`
	ReceiptId    string          `db:"receipt_id"`
	SupplierCode string          `db:"supplier_code"`
	ModelCode    string          `db:"model_code"`
	ProductSKU   sql.NullString  `db:"product_sku"`
	UnitCost     decimal.Decimal `db:"unit_cost"`
	ReceivedAt   time.Time       `db:"received_at"`
}

// SerialItem is one physical unit.
type SerialItem struct {
	Id        int          `db:"id"`
	CreatedAt time.Time    `db:"created_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
	SerialItemInsert
}

type GoodsReceiptNew struct {
	SupplierCode string
	ModelCode    string
	Quantity     int
	UnitCost     decimal.Decimal
	// ReceivedAt picks the year/month bucket. Zero means now.
	ReceivedAt time.Time
}

type GoodsReceipt struct {
	Id    string
	Items []SerialItem
}

type ValidationOutcome string

const (
	OutcomeValid         ValidationOutcome = "valid"
	OutcomeNotRegistered ValidationOutcome = "not_registered"
	OutcomeMalformed     ValidationOutcome = "malformed"
	OutcomeEmpty         ValidationOutcome = "empty"
)

// BarcodeItem is a decoded barcode with its registry entries resolved.
type BarcodeItem struct {
	Barcode  string
	Fields   BarcodeFields
	Supplier *SupplierCode
	Model    *BarcodeModelCode
	// Unit is set when a SerialItem carries this barcode.
	Unit *SerialItem
}

// BarcodeValidation is the structured result of validating a scanned string.
type BarcodeValidation struct {
	Outcome ValidationOutcome
	Message string
	// Field names the field that failed, if any.
	Field string
	Item  *BarcodeItem
}

func (v *BarcodeValidation) Valid() bool {
	return v.Outcome == OutcomeValid
}
