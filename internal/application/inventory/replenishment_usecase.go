package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de materiales.
type ReplenishmentUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.InventoryItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

var idealFactor = decimal.NewFromFloat(1.5)

// GenerateReplenishmentList materiales en Low u Out of Stock con la cantidad sugerida para
// llegar a 1.5 × mínimo y su costo estimado. Prioridad 1 = más urgente (agotados primero,
// luego menor cobertura del mínimo).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{NeedsRestock: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		ideal := item.MinStock.Mul(idealFactor)
		qty := ideal.Sub(item.Quantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		s := dto.ReplenishmentSuggestionDTO{
			ItemID:            item.ID,
			ItemCode:          item.ItemCode,
			ItemName:          item.ItemName,
			Category:          string(item.Category),
			Unit:              item.Unit,
			CurrentStock:      item.Quantity,
			MinStock:          item.MinStock,
			IdealStock:        ideal,
			SuggestedOrderQty: qty,
			SupplierName:      item.SupplierName,
		}
		if item.PurchaseCost != nil {
			s.EstimatedOrderCost = qty.Mul(*item.PurchaseCost).Round(2)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return coverage(out[i]).LessThan(coverage(out[j])) })
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

// coverage fracción del mínimo cubierta por el stock actual (0 si agotado).
func coverage(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if !s.MinStock.IsPositive() || !s.CurrentStock.IsPositive() {
		return decimal.Zero
	}
	return s.CurrentStock.Div(s.MinStock)
}
