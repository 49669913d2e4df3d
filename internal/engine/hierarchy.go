package engine

import (
	"context"
	"errors"

	"github.com/apexhome/products-manager/internal/codefmt"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

// unknown turns a missing hierarchy row into an input error naming the request field.
func unknown(err error, field string) error {
	if errors.Is(err, gerr.ErrNotFound) {
		return gerr.InvalidInput(field, "does not exist")
	}
	return err
}

// ResolveHierarchy maps a classification onto its short codes. A missing subcategory
// resolves to the GEN segment. Unknown ids and a subcategory of another category are
// input errors.
func (e *Engine) ResolveHierarchy(ctx context.Context, k entity.HierarchyKey) (entity.HierarchyCodes, error) {
	var hc entity.HierarchyCodes
	switch {
	case k.BrandId <= 0:
		return hc, gerr.InvalidInput("brand_id", "is required")
	case k.CategoryId <= 0:
		return hc, gerr.InvalidInput("category_id", "is required")
	case k.SubcategoryId.Valid && k.SubcategoryId.Int32 <= 0:
		return hc, gerr.InvalidInput("subcategory_id", "must be positive")
	}
	itemType := codefmt.Normalize(k.ItemType)
	if err := codefmt.ItemTypeRule.Validate(itemType); err != nil {
		return hc, err
	}

	h := e.rep.Hierarchy()
	brand, err := h.GetBrandById(ctx, k.BrandId)
	if err != nil {
		return hc, unknown(err, "brand_id")
	}
	category, err := h.GetCategoryById(ctx, k.CategoryId)
	if err != nil {
		return hc, unknown(err, "category_id")
	}
	hc.Brand = brand.Code
	hc.Category = category.Code
	hc.Subcategory = codefmt.NoSubcategoryCode

	if k.SubcategoryId.Valid {
		sub, err := h.GetSubcategoryById(ctx, int(k.SubcategoryId.Int32))
		if err != nil {
			return hc, unknown(err, "subcategory_id")
		}
		if sub.CategoryId != category.Id {
			return hc, gerr.InvalidInput("subcategory_id", "belongs to another category")
		}
		hc.Subcategory = sub.Code
	}

	it, err := h.GetItemType(ctx, itemType)
	if err != nil {
		return hc, unknown(err, "item_type")
	}
	hc.ItemType = it.Code
	return hc, nil
}
