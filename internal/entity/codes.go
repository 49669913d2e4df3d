package entity

import (
	"database/sql"
	"fmt"
	"time"
)

type BucketKind string

const (
	BucketSKU     BucketKind = "sku"
	BucketBarcode BucketKind = "barcode"
)

// Bucket scopes a sequence. Distinct buckets have independent numbering.
type Bucket struct {
	Kind BucketKind
	Key  string
	// Limit is the largest value the bucket may issue.
	Limit int64
}

func (b Bucket) String() string {
	return fmt.Sprintf("%s:%s", b.Kind, b.Key)
}

// SequenceCounter is one row of the counter store.
type SequenceCounter struct {
	BucketKey  string    `db:"bucket_key"`
	Kind       string    `db:"kind"`
	LastIssued int64     `db:"last_issued"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type SupplierCodeInsert struct {
	Code     string        `db:"code"`
	Name     string        `db:"name"`
	VendorId sql.NullInt32 `db:"vendor_id"`
}

// SupplierCode maps a vendor onto the 2 letter barcode supplier field.
// VendorId is a back-reference only; a code may exist without a vendor record.
type SupplierCode struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	SupplierCodeInsert
}

type BarcodeModelCodeInsert struct {
	Code       string         `db:"code"`
	Name       string         `db:"name"`
	ProductSKU sql.NullString `db:"product_sku"`
	ItemType   string         `db:"item_type"`
}

// BarcodeModelCode is the registered exactly-3-letter model field of a barcode.
// It is unrelated to the 1..5 letter model component inside a SKU.
type BarcodeModelCode struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	BarcodeModelCodeInsert
}

// RegistrySeed is the full replacement content of both registries.
type RegistrySeed struct {
	Suppliers []SupplierCodeInsert
	Models    []BarcodeModelCodeInsert
}

type ReseedResult struct {
	SuppliersRemoved int
	ModelsRemoved    int
	SuppliersCreated int
	ModelsCreated    int
	// BackupLocation is empty when no backup store is configured.
	BackupLocation string
}

// CapacityAlert is raised once when a bucket crosses its alert threshold.
type CapacityAlert struct {
	Bucket Bucket
	Issued int64
}

// StoredObject is an object kept in the object store, such as a registry backup.
type StoredObject struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
