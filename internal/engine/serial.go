package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apexhome/products-manager/internal/barcode"
	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/google/uuid"
)

type resolvedCodes struct {
	supplier *entity.SupplierCode
	model    *entity.BarcodeModelCode
}

// resolveCodes validates and resolves both codes of a barcode.
// Unregistered codes are input errors here: nothing is issued for them.
func (e *Engine) resolveCodes(ctx context.Context, supplier, model string) (*resolvedCodes, error) {
	supplier = codefmt.Normalize(supplier)
	if err := codefmt.SupplierCodeRule.Validate(supplier); err != nil {
		return nil, err
	}
	model = codefmt.Normalize(model)
	if err := codefmt.BarcodeModelCodeRule.Validate(model); err != nil {
		return nil, err
	}
	sc, err := e.codes.ResolveSupplier(ctx, supplier)
	if err != nil {
		return nil, err
	}
	mc, err := e.codes.ResolveModel(ctx, model)
	if err != nil {
		return nil, err
	}
	return &resolvedCodes{supplier: sc, model: mc}, nil
}

func fieldsAt(rc *resolvedCodes, at time.Time, seq int64) entity.BarcodeFields {
	at = at.UTC()
	return entity.BarcodeFields{
		SupplierCode: rc.supplier.Code,
		Year:         at.Year(),
		Month:        at.Month(),
		ModelCode:    rc.model.Code,
		Sequence:     seq,
	}
}

// IssueBarcode allocates one barcode for a unit of supplier/model received at at.
// A zero at means now.
func (e *Engine) IssueBarcode(ctx context.Context, supplier, model string, at time.Time) (string, error) {
	if at.IsZero() {
		at = e.now()
	}
	rc, err := e.resolveCodes(ctx, supplier, model)
	if err != nil {
		return "", err
	}
	b, err := barcode.Bucket(rc.supplier.Code, rc.model.Code, at)
	if err != nil {
		return "", err
	}
	n, err := e.alloc.Next(ctx, b)
	if err != nil {
		return "", err
	}
	return barcode.Compose(fieldsAt(rc, at, n))
}

// ReceiveGoods issues a barcode for every unit of a receipt and stores the units.
// Values are allocated one at a time, so units of concurrent receipts of the same
// bucket may interleave.
func (e *Engine) ReceiveGoods(ctx context.Context, gr *entity.GoodsReceiptNew) (*entity.GoodsReceipt, error) {
	if gr.Quantity < 1 || gr.Quantity > MaxReceiptUnits {
		return nil, gerr.InvalidInput("quantity", "must be between 1 and %d, got %d", MaxReceiptUnits, gr.Quantity)
	}
	if gr.UnitCost.IsNegative() {
		return nil, gerr.InvalidInput("unit_cost", "must not be negative")
	}
	at := gr.ReceivedAt
	if at.IsZero() {
		at = e.now()
	}
	at = at.UTC()

	rc, err := e.resolveCodes(ctx, gr.SupplierCode, gr.ModelCode)
	if err != nil {
		return nil, err
	}
	b, err := barcode.Bucket(rc.supplier.Code, rc.model.Code, at)
	if err != nil {
		return nil, err
	}

	receiptId := uuid.New().String()
	items := make([]entity.SerialItemInsert, 0, gr.Quantity)
	for i := 0; i < gr.Quantity; i++ {
		n, err := e.alloc.Next(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("unit %d of %d: %w", i+1, gr.Quantity, err)
		}
		bc, err := barcode.Compose(fieldsAt(rc, at, n))
		if err != nil {
			return nil, err
		}
		items = append(items, entity.SerialItemInsert{
			Barcode:      bc,
			ReceiptId:    receiptId,
			SupplierCode: rc.supplier.Code,
			ModelCode:    rc.model.Code,
			ProductSKU:   rc.model.ProductSKU,
			UnitCost:     gr.UnitCost.Round(2),
			ReceivedAt:   at,
		})
	}

	if err := e.rep.SerialItems().AddSerialItems(ctx, items); err != nil {
		slog.Default().ErrorContext(ctx, "can't store received units",
			slog.String("err", err.Error()),
			slog.String("receipt", receiptId),
			slog.String("bucket", b.String()),
		)
		return nil, err
	}
	e.m.ObserveUnitsReceived(len(items))
	slog.Default().InfoContext(ctx, "goods received",
		slog.String("receipt", receiptId),
		slog.String("bucket", b.String()),
		slog.Int("units", len(items)),
	)

	created := e.now().UTC()
	rec := &entity.GoodsReceipt{Id: receiptId, Items: make([]entity.SerialItem, 0, len(items))}
	for _, it := range items {
		rec.Items = append(rec.Items, entity.SerialItem{CreatedAt: created, SerialItemInsert: it})
	}
	return rec, nil
}

// GetReceipt returns the stored units of a receipt. A receipt without units does not exist.
func (e *Engine) GetReceipt(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gerr.InvalidInput("receipt_id", "%q is not a receipt id", id)
	}
	items, err := e.rep.SerialItems().GetSerialItemsByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("receipt %s: %w", id, gerr.ErrNotFound)
	}
	return &entity.GoodsReceipt{Id: id, Items: items}, nil
}

// ValidateBarcode decodes a scanned string and resolves its codes. Expected failures
// are reported in the result; only infrastructure failures are returned as errors.
func (e *Engine) ValidateBarcode(ctx context.Context, raw string) (*entity.BarcodeValidation, error) {
	v, err := e.validateBarcode(ctx, raw)
	if err != nil {
		return nil, err
	}
	e.m.ObserveValidation(string(v.Outcome))
	return v, nil
}

func (e *Engine) validateBarcode(ctx context.Context, raw string) (*entity.BarcodeValidation, error) {
	f, err := barcode.Parse(raw)
	switch {
	case errors.Is(err, gerr.ErrEmptyInput):
		return &entity.BarcodeValidation{Outcome: entity.OutcomeEmpty, Message: "barcode is empty"}, nil
	case errors.Is(err, gerr.ErrMalformedBarcode):
		return &entity.BarcodeValidation{
			Outcome: entity.OutcomeMalformed,
			Message: err.Error(),
			Field:   gerr.Field(err),
		}, nil
	case err != nil:
		return nil, err
	}

	item := &entity.BarcodeItem{Barcode: barcode.Canonical(raw), Fields: f}

	item.Supplier, err = e.codes.ResolveSupplier(ctx, f.SupplierCode)
	if err != nil {
		return notRegistered(err, item)
	}
	item.Model, err = e.codes.ResolveModel(ctx, f.ModelCode)
	if err != nil {
		return notRegistered(err, item)
	}

	unit, err := e.rep.SerialItems().GetSerialItemByBarcode(ctx, item.Barcode)
	switch {
	case err == nil:
		item.Unit = unit
	case !errors.Is(err, gerr.ErrNotFound):
		return nil, err
	}

	return &entity.BarcodeValidation{
		Outcome: entity.OutcomeValid,
		Message: fmt.Sprintf("%s %s, unit %d", item.Supplier.Name, item.Model.Name, f.Sequence),
		Item:    item,
	}, nil
}

func notRegistered(err error, item *entity.BarcodeItem) (*entity.BarcodeValidation, error) {
	if !errors.Is(err, gerr.ErrCodeNotRegistered) {
		return nil, err
	}
	return &entity.BarcodeValidation{
		Outcome: entity.OutcomeNotRegistered,
		Message: err.Error(),
		Field:   gerr.Field(err),
		Item:    item,
	}, nil
}
