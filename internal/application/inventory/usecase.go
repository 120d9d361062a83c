// Package inventory gestiona los materiales del taller. El estado de stock nunca se guarda:
// se deriva con inventory.StockStatusOf cada vez que se lee o cambia la cantidad.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/domain/sequence"
)

// StockUseCase monitor de stock y CRUD de materiales.
type StockUseCase struct {
	txRunner ports.TxRunner
	itemRepo repository.InventoryItemRepository
	now      func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner ports.TxRunner, itemRepo repository.InventoryItemRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, itemRepo: itemRepo, now: time.Now}
}

// Create registra un material. MinStock por defecto 10.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := domain.Required("item_name", in.ItemName); err != nil {
		return nil, err
	}
	if err := domain.Required("unit", in.Unit); err != nil {
		return nil, err
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if err := domain.CheckScale("quantity", in.Quantity); err != nil {
		return nil, err
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.NewValidationError("min_stock", "no puede ser negativo")
		}
		if err := domain.CheckScale("min_stock", *in.MinStock); err != nil {
			return nil, err
		}
		minStock = *in.MinStock
	}
	if in.PurchaseCost != nil {
		if in.PurchaseCost.IsNegative() {
			return nil, domain.NewValidationError("purchase_cost", "no puede ser negativo")
		}
		if err := domain.CheckScale("purchase_cost", *in.PurchaseCost); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		ItemName:     strings.TrimSpace(in.ItemName),
		Category:     category,
		Quantity:     in.Quantity,
		MinStock:     minStock,
		Unit:         strings.TrimSpace(in.Unit),
		PurchaseCost: in.PurchaseCost,
		SupplierName: strings.TrimSpace(in.SupplierName),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		n, err := repos.Sequences.Next(ctx, sequence.PrefixItem)
		if err != nil {
			return err
		}
		item.ItemCode = sequence.Format(sequence.PrefixItem, n)
		return repos.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un material.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// List materiales con filtros por categoría, estado derivado y texto.
func (uc *StockUseCase) List(ctx context.Context, in dto.ItemFilterRequest) ([]dto.ItemResponse, error) {
	filter := repository.ItemFilter{Search: in.Search}
	if in.Category != "" {
		c, err := ParseCategory(in.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = c
	}
	var status entity.StockStatus
	if in.Status != "" {
		status = entity.StockStatus(in.Status)
		switch status {
		case entity.StockStatusInStock, entity.StockStatusLowStock, entity.StockStatusOutOfStock:
		default:
			return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", in.Status))
		}
	}
	list, err := uc.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, item := range list {
		if status != "" && inventory.StockStatusOf(item.Quantity, item.MinStock) != status {
			continue
		}
		out = append(out, *ToItemResponse(item))
	}
	return out, nil
}

// ListLowStock materiales en Low Stock u Out of Stock.
func (uc *StockUseCase) ListLowStock(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.itemRepo.List(ctx, repository.ItemFilter{NeedsRestock: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, *ToItemResponse(item))
	}
	return out, nil
}

// Update modifica campos descriptivos y el umbral.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	return uc.mutate(ctx, id, func(item *entity.InventoryItem) error {
		if in.ItemName != nil {
			if err := domain.Required("item_name", *in.ItemName); err != nil {
				return err
			}
			item.ItemName = strings.TrimSpace(*in.ItemName)
		}
		if in.Category != nil {
			c, err := ParseCategory(*in.Category)
			if err != nil {
				return err
			}
			item.Category = c
		}
		if in.MinStock != nil {
			if in.MinStock.IsNegative() {
				return domain.NewValidationError("min_stock", "no puede ser negativo")
			}
			if err := domain.CheckScale("min_stock", *in.MinStock); err != nil {
				return err
			}
			item.MinStock = *in.MinStock
		}
		if in.Unit != nil {
			if err := domain.Required("unit", *in.Unit); err != nil {
				return err
			}
			item.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.PurchaseCost != nil {
			if in.PurchaseCost.IsNegative() {
				return domain.NewValidationError("purchase_cost", "no puede ser negativo")
			}
			if err := domain.CheckScale("purchase_cost", *in.PurchaseCost); err != nil {
				return err
			}
			c := *in.PurchaseCost
			item.PurchaseCost = &c
		}
		if in.SupplierName != nil {
			item.SupplierName = strings.TrimSpace(*in.SupplierName)
		}
		if in.Notes != nil {
			item.Notes = strings.TrimSpace(*in.Notes)
		}
		return nil
	})
}

// SetQuantity fija la cantidad; el estado se recalcula al devolver el ítem.
func (uc *StockUseCase) SetQuantity(ctx context.Context, id string, quantity decimal.Decimal) (*dto.ItemResponse, error) {
	if quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if err := domain.CheckScale("quantity", quantity); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(item *entity.InventoryItem) error {
		if quantity.GreaterThan(item.Quantity) {
			now := uc.now()
			item.LastRestockedAt = &now
		}
		item.Quantity = quantity
		return nil
	})
}

// Adjust suma delta (reposición si > 0, consumo si < 0). Rechaza dejar la cantidad negativa.
func (uc *StockUseCase) Adjust(ctx context.Context, id string, delta decimal.Decimal) (*dto.ItemResponse, error) {
	if delta.IsZero() {
		return nil, domain.NewValidationError("delta", "no puede ser cero")
	}
	if err := domain.CheckScale("delta", delta); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(item *entity.InventoryItem) error {
		next := item.Quantity.Add(delta)
		if next.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if delta.IsPositive() {
			now := uc.now()
			item.LastRestockedAt = &now
		}
		item.Quantity = next
		return nil
	})
}

// Delete elimina un material.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}

// mutate bloquea la fila (SELECT FOR UPDATE), aplica fn y persiste en la misma transacción.
func (uc *StockUseCase) mutate(ctx context.Context, id string, fn func(item *entity.InventoryItem) error) (*dto.ItemResponse, error) {
	var out *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		item, err := repos.Items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := fn(item); err != nil {
			return err
		}
		item.UpdatedAt = uc.now()
		if err := repos.Items.Update(ctx, item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(out), nil
}

// ParseCategory valida la categoría.
func ParseCategory(s string) (entity.ItemCategory, error) {
	c := entity.ItemCategory(strings.TrimSpace(s))
	if !c.Valid() {
		return "", domain.NewValidationError("category", fmt.Sprintf("categoría desconocida %q", s))
	}
	return c, nil
}

// ToItemResponse convierte la entidad a DTO con el estado derivado.
func ToItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              item.ID,
		ItemCode:        item.ItemCode,
		ItemName:        item.ItemName,
		Category:        string(item.Category),
		Quantity:        item.Quantity,
		MinStock:        item.MinStock,
		Unit:            item.Unit,
		PurchaseCost:    item.PurchaseCost,
		SupplierName:    item.SupplierName,
		Notes:           item.Notes,
		Status:          string(inventory.StockStatusOf(item.Quantity, item.MinStock)),
		LastRestockedAt: item.LastRestockedAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
