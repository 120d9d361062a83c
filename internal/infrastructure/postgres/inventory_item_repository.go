package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, item_code, item_name, category, quantity, min_stock, unit, purchase_cost,
	supplier_name, notes, last_restocked_at, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		item     entity.InventoryItem
		category string
	)
	err := row.Scan(
		&item.ID, &item.ItemCode, &item.ItemName, &category, &item.Quantity, &item.MinStock, &item.Unit, &item.PurchaseCost,
		&item.SupplierName, &item.Notes, &item.LastRestockedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Category = entity.ItemCategory(category)
	return &item, nil
}

func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, item_code, item_name, category, quantity, min_stock, unit, purchase_cost,
			supplier_name, notes, last_restocked_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ItemCode, item.ItemName, string(item.Category), item.Quantity, item.MinStock, item.Unit, item.PurchaseCost,
		item.SupplierName, item.Notes, item.LastRestockedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("material %s: %w", item.ItemCode, domain.ErrConflict)
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// List ordenado por nombre.
func (r *InventoryItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var w whereBuilder
	if f.Category != "" {
		w.add("category = ?", string(f.Category))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.add("lower(item_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.NeedsRestock {
		w.add("quantity <= min_stock")
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items`+w.sql()+` ORDER BY item_name, seq`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET item_name = $2, category = $3, quantity = $4, min_stock = $5, unit = $6,
			purchase_cost = $7, supplier_name = $8, notes = $9, last_restocked_at = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.ItemName, string(item.Category), item.Quantity, item.MinStock, item.Unit,
		item.PurchaseCost, item.SupplierName, item.Notes, item.LastRestockedAt, item.UpdatedAt,
	)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
