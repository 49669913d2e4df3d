package store

import (
	"context"
	"fmt"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type serialStore struct {
	*MYSQLStore
}

// SerialItems returns an object implementing serial items interface
func (ms *MYSQLStore) SerialItems() dependency.SerialItems {
	return &serialStore{
		MYSQLStore: ms,
	}
}

// AddSerialItems inserts all units of a receipt in one statement.
func (ss *serialStore) AddSerialItems(ctx context.Context, items []entity.SerialItemInsert) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, map[string]any{
			"barcode":       it.Barcode,
			"receipt_id":    it.ReceiptId,
			"supplier_code": it.SupplierCode,
			"model_code":    it.ModelCode,
			"product_sku":   it.ProductSKU,
			"unit_cost":     it.UnitCost,
			"received_at":   it.ReceivedAt,
		})
	}
	if err := BulkInsert(ctx, ss.DB(), "serial_item", rows); err != nil {
		if isErrUniqueViolation(err) {
			return gerr.Duplicate("barcode", "barcode already issued")
		}
		return fmt.Errorf("can't add serial items: %w", err)
	}
	return nil
}

const selectSerialItem = `
	SELECT id, created_at, deleted_at, barcode, receipt_id, supplier_code, model_code, product_sku, unit_cost, received_at
	FROM serial_item`

func (ss *serialStore) GetSerialItemByBarcode(ctx context.Context, barcode string) (*entity.SerialItem, error) {
	return queryOne[entity.SerialItem](ctx, ss.DB(), fmt.Sprintf("serial item %q", barcode),
		selectSerialItem+` WHERE barcode = :barcode`,
		map[string]any{"barcode": barcode})
}

func (ss *serialStore) GetSerialItemsByReceipt(ctx context.Context, receiptId string) ([]entity.SerialItem, error) {
	items, err := QueryListNamed[entity.SerialItem](ctx, ss.DB(),
		selectSerialItem+` WHERE receipt_id = :receiptId ORDER BY barcode`,
		map[string]any{"receiptId": receiptId})
	if err != nil {
		return nil, fmt.Errorf("can't get serial items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: receipt %q", gerr.ErrNotFound, receiptId)
	}
	return items, nil
}
