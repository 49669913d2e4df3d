package dependency

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/apexhome/products-manager/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:generate mockery --case underscore --all --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Sequences interface {
		// Next atomically increments the counter of the bucket and returns the new value.
		// The counter row is created on first use. Values above b.Limit are never issued.
		Next(ctx context.Context, b entity.Bucket) (int64, error)
		// Peek returns the value Next would return now without changing anything.
		Peek(ctx context.Context, b entity.Bucket) (int64, error)
		GetCounter(ctx context.Context, bucketKey string, kind entity.BucketKind) (*entity.SequenceCounter, error)
	}

	Hierarchy interface {
		GetBrandById(ctx context.Context, id int) (*entity.Brand, error)
		GetCategoryById(ctx context.Context, id int) (*entity.Category, error)
		GetSubcategoryById(ctx context.Context, id int) (*entity.Subcategory, error)
		GetItemType(ctx context.Context, code string) (*entity.ItemType, error)
		ListVendors(ctx context.Context) ([]entity.Vendor, error)
	}

	Products interface {
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error)
		GetProductBySKU(ctx context.Context, sku string) (*entity.Product, error)
		ListProducts(ctx context.Context) ([]entity.Product, error)
	}

	Registry interface {
		ContextStore
		AddSupplierCode(ctx context.Context, sc *entity.SupplierCodeInsert) (int, error)
		AddBarcodeModelCode(ctx context.Context, mc *entity.BarcodeModelCodeInsert) (int, error)
		GetSupplierCode(ctx context.Context, code string) (*entity.SupplierCode, error)
		GetBarcodeModelCode(ctx context.Context, code string) (*entity.BarcodeModelCode, error)
		ListSupplierCodes(ctx context.Context) ([]entity.SupplierCode, error)
		ListBarcodeModelCodes(ctx context.Context) ([]entity.BarcodeModelCode, error)
		// ReplaceAll deletes every supplier and model code and inserts seed in one transaction.
		// Sequence counters are left untouched.
		ReplaceAll(ctx context.Context, seed *entity.RegistrySeed) (*entity.ReseedResult, error)
	}

	SerialItems interface {
		AddSerialItems(ctx context.Context, items []entity.SerialItemInsert) error
		GetSerialItemByBarcode(ctx context.Context, barcode string) (*entity.SerialItem, error)
		GetSerialItemsByReceipt(ctx context.Context, receiptId string) ([]entity.SerialItem, error)
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Sequences() Sequences
		Hierarchy() Hierarchy
		Products() Products
		Registry() Registry
		SerialItems() SerialItems
		Mail() Mail
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// Allocator issues sequence values. Implementations differ in where the counter lives.
	Allocator interface {
		Next(ctx context.Context, b entity.Bucket) (int64, error)
		Peek(ctx context.Context, b entity.Bucket) (int64, error)
	}

	// Locker serializes writers across processes.
	Locker interface {
		Obtain(ctx context.Context, key string) (release func(context.Context) error, err error)
	}

	// CodeResolver is the read side of the supplier/model registries.
	CodeResolver interface {
		ResolveSupplier(ctx context.Context, code string) (*entity.SupplierCode, error)
		ResolveModel(ctx context.Context, code string) (*entity.BarcodeModelCode, error)
	}

	FileStore interface {
		// Upload stores r under key and returns its public location.
		Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
		// List returns the objects stored under folder, newest first.
		List(ctx context.Context, folder string) ([]entity.StoredObject, error)
	}

	Mailer interface {
		QueueCapacityAlert(ctx context.Context, alert *entity.CapacityAlert) error
		Start(ctx context.Context) error
		Stop() error
	}

	Sender interface {
		SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
	}
)
