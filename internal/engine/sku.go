package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/apexhome/products-manager/internal/sku"
)

// skuComponents validates the request and resolves everything but the sequence.
// The model code is checked first so a bad one never reaches the store.
func (e *Engine) skuComponents(ctx context.Context, req *entity.SKURequest) (sku.Components, error) {
	model := codefmt.Normalize(req.ModelCode)
	if err := codefmt.SKUModelCodeRule.Validate(model); err != nil {
		return sku.Components{}, err
	}
	hc, err := e.ResolveHierarchy(ctx, req.HierarchyKey)
	if err != nil {
		return sku.Components{}, err
	}
	c := sku.FromCodes(hc, model)
	if err := c.Validate(); err != nil {
		return sku.Components{}, fmt.Errorf("hierarchy codes can't form a sku: %w", err)
	}
	return c, nil
}

// PreviewSKU composes the SKU the next commit would most likely receive without
// allocating. It is safe to call on every keystroke.
func (e *Engine) PreviewSKU(ctx context.Context, req *entity.SKURequest) (*entity.SKUResult, error) {
	c, err := e.skuComponents(ctx, req)
	if err != nil {
		return nil, err
	}
	n, err := e.alloc.Peek(ctx, c.Bucket())
	if err != nil {
		return nil, err
	}
	c.Sequence = n
	s, err := sku.Compose(c)
	if err != nil {
		return nil, err
	}
	return &entity.SKUResult{SKU: s, ModelCode: c.Model, Sequence: n, Tentative: true}, nil
}

// CommitSKU allocates the next sequence of the request's bucket and composes the SKU.
func (e *Engine) CommitSKU(ctx context.Context, req *entity.SKURequest) (*entity.SKUResult, error) {
	c, err := e.skuComponents(ctx, req)
	if err != nil {
		return nil, err
	}
	n, err := e.alloc.Next(ctx, c.Bucket())
	if err != nil {
		return nil, err
	}
	c.Sequence = n
	s, err := sku.Compose(c)
	if err != nil {
		return nil, err
	}
	return &entity.SKUResult{SKU: s, ModelCode: c.Model, Sequence: n}, nil
}

// CreateProduct commits a SKU and stores the product under it.
func (e *Engine) CreateProduct(ctx context.Context, p *entity.ProductNew) (*entity.Product, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, gerr.InvalidInput("name", "must not be empty")
	}
	if p.MRP.IsNegative() {
		return nil, gerr.InvalidInput("mrp", "must not be negative")
	}

	res, err := e.CommitSKU(ctx, &p.SKURequest)
	if err != nil {
		return nil, err
	}
	prd := entity.ProductInsert{
		SKU:           res.SKU,
		Name:          name,
		BrandId:       p.BrandId,
		CategoryId:    p.CategoryId,
		SubcategoryId: p.SubcategoryId,
		ItemType:      codefmt.Normalize(p.ItemType),
		ModelCode:     res.ModelCode,
		MRP:           p.MRP.Round(2),
	}
	id, err := e.rep.Products().AddProduct(ctx, &prd)
	if err != nil {
		// the sequence stays consumed
		slog.Default().ErrorContext(ctx, "can't add product",
			slog.String("err", err.Error()),
			slog.String("sku", res.SKU),
		)
		return nil, err
	}
	slog.Default().InfoContext(ctx, "product created",
		slog.Int("id", id),
		slog.String("sku", res.SKU),
	)
	return &entity.Product{Id: id, CreatedAt: e.now().UTC(), ProductInsert: prd}, nil
}

// SKUInfo is a decoded SKU and the product that carries it, if any.
type SKUInfo struct {
	SKU        string
	Components sku.Components
	Product    *entity.Product
}

// DecodeSKU parses s and looks up its product. Soft-deleted products are still returned
// since their SKUs are never reissued.
func (e *Engine) DecodeSKU(ctx context.Context, s string) (*SKUInfo, error) {
	c, err := sku.Parse(s)
	if err != nil {
		return nil, err
	}
	canonical, err := sku.Compose(c)
	if err != nil {
		return nil, err
	}
	info := &SKUInfo{SKU: canonical, Components: c}

	prd, err := e.rep.Products().GetProductBySKU(ctx, canonical)
	switch {
	case err == nil:
		info.Product = prd
	case !errors.Is(err, gerr.ErrNotFound):
		return nil, err
	}
	return info, nil
}
