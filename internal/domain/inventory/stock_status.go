package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// StockStatusOf es la única fuente del estado de stock: cantidad 0 -> Out of Stock;
// 0 < cantidad <= mínimo -> Low Stock; si no -> In Stock.
func StockStatusOf(quantity, minStock decimal.Decimal) entity.StockStatus {
	switch {
	case quantity.LessThanOrEqual(decimal.Zero):
		return entity.StockStatusOutOfStock
	case quantity.LessThanOrEqual(minStock):
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}

// NeedsRestock informa si el ítem está en Low u Out of Stock.
func NeedsRestock(item *entity.InventoryItem) bool {
	return StockStatusOf(item.Quantity, item.MinStock) != entity.StockStatusInStock
}
