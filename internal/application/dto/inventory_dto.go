package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory.
type CreateItemRequest struct {
	ItemName     string           `json:"item_name" validate:"required"`
	Category     string           `json:"category" validate:"required"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	Unit         string           `json:"unit" validate:"required"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost,omitempty"`
	SupplierName string           `json:"supplier_name,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// UpdateItemRequest cambios descriptivos. La cantidad se cambia con SetQuantity/Adjust.
type UpdateItemRequest struct {
	ItemName     *string          `json:"item_name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost,omitempty"`
	SupplierName *string          `json:"supplier_name,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// SetQuantityRequest body para PUT /api/inventory/:id/quantity.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// AdjustQuantityRequest body para POST /api/inventory/:id/adjust. Delta > 0 es reposición; < 0 consumo.
type AdjustQuantityRequest struct {
	Delta decimal.Decimal `json:"delta"`
	Notes string          `json:"notes,omitempty"`
}

// ItemResponse salida de un material con su estado derivado.
type ItemResponse struct {
	ID              string           `json:"id"`
	ItemCode        string           `json:"item_id"`
	ItemName        string           `json:"item_name"`
	Category        string           `json:"category"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinStock        decimal.Decimal  `json:"min_stock"`
	Unit            string           `json:"unit"`
	PurchaseCost    *decimal.Decimal `json:"purchase_cost,omitempty"`
	SupplierName    string           `json:"supplier_name,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Status          string           `json:"status"`
	LastRestockedAt *time.Time       `json:"last_restocked_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ItemFilterRequest filtros de GET /api/inventory.
type ItemFilterRequest struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	Search   string `query:"search"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un material bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	ItemCode           string          `json:"item_code"`
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStock           decimal.Decimal `json:"min_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinStock * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * PurchaseCost
	SupplierName       string          `json:"supplier_name,omitempty"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
