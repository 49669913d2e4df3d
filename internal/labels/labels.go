// Package labels renders printable label sheets for received units.
package labels

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheet       = "Labels"
	folder      = "labels"
)

var headings = []string{"Barcode", "Supplier", "Model", "Product SKU", "Received", "Unit cost"}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// Render writes one row per unit of rec, in barcode order, as an XLSX workbook.
func Render(w io.Writer, rec *entity.GoodsReceipt) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, h := range headings {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, it := range rec.Items {
		row := i + 2
		values := []any{
			it.Barcode,
			it.SupplierCode,
			it.ModelCode,
			it.ProductSKU.String,
			it.ReceivedAt.UTC().Format("2006-01-02"),
			it.UnitCost.StringFixed(2),
		}
		for j, v := range values {
			if err := f.SetCellValue(sheet, cell(j+1, row), v); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "D", "D", 28); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("can't write label sheet: %w", err)
	}
	return nil
}

// Archive renders the sheet of rec and stores it under labels/<receipt id>.xlsx.
func Archive(ctx context.Context, fs dependency.FileStore, rec *entity.GoodsReceipt) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, rec); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.xlsx", folder, rec.Id)
	return fs.Upload(ctx, key, &buf, int64(buf.Len()), ContentType)
}
