package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ItemFilter filtros para listar materiales.
type ItemFilter struct {
	Category entity.ItemCategory
	Search   string
	// NeedsRestock limita a quantity <= min_stock (Low u Out of Stock).
	NeedsRestock bool
}

// InventoryItemRepository define el puerto de persistencia de materiales.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
}
