package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/entity"
	gerr "github.com/apexhome/products-manager/internal/errors"
)

type hierarchyStore struct {
	*MYSQLStore
}

// Hierarchy returns an object implementing hierarchy interface.
// The hierarchy tables are administered elsewhere and only read here.
func (ms *MYSQLStore) Hierarchy() dependency.Hierarchy {
	return &hierarchyStore{
		MYSQLStore: ms,
	}
}

func queryOne[T any](ctx context.Context, conn dependency.DB, what string, query string, params map[string]any) (*T, error) {
	t, err := QueryNamedOne[T](ctx, conn, query, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", gerr.ErrNotFound, what)
		}
		return nil, fmt.Errorf("can't get %s: %w", what, err)
	}
	return &t, nil
}

func (hs *hierarchyStore) GetBrandById(ctx context.Context, id int) (*entity.Brand, error) {
	return queryOne[entity.Brand](ctx, hs.DB(), fmt.Sprintf("brand %d", id),
		`SELECT id, code, name FROM brand WHERE id = :id`,
		map[string]any{"id": id})
}

func (hs *hierarchyStore) GetCategoryById(ctx context.Context, id int) (*entity.Category, error) {
	return queryOne[entity.Category](ctx, hs.DB(), fmt.Sprintf("category %d", id),
		`SELECT id, code, name FROM category WHERE id = :id`,
		map[string]any{"id": id})
}

func (hs *hierarchyStore) GetSubcategoryById(ctx context.Context, id int) (*entity.Subcategory, error) {
	return queryOne[entity.Subcategory](ctx, hs.DB(), fmt.Sprintf("subcategory %d", id),
		`SELECT id, category_id, code, name FROM subcategory WHERE id = :id`,
		map[string]any{"id": id})
}

func (hs *hierarchyStore) GetItemType(ctx context.Context, code string) (*entity.ItemType, error) {
	return queryOne[entity.ItemType](ctx, hs.DB(), fmt.Sprintf("item type %q", code),
		`SELECT code, name FROM item_type WHERE code = :code`,
		map[string]any{"code": code})
}

func (hs *hierarchyStore) ListVendors(ctx context.Context) ([]entity.Vendor, error) {
	vs, err := QueryListNamed[entity.Vendor](ctx, hs.DB(), `SELECT id, name FROM vendor ORDER BY id`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list vendors: %w", err)
	}
	return vs, nil
}
