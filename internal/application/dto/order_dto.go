package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. El estado inicial siempre es New.
type CreateOrderRequest struct {
	CustomerID   string          `json:"customer_id" validate:"required"`
	DressType    string          `json:"dress_type" validate:"required"`
	FabricType   string          `json:"fabric_type,omitempty"`
	OrderDate    *time.Time      `json:"order_date,omitempty"`
	TrialDate    *time.Time      `json:"trial_date,omitempty"`
	DeliveryDate time.Time       `json:"delivery_date" validate:"required"`
	AssignedTo   string          `json:"assigned_to,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateOrderRequest solo campos no relacionados con estado ni asignación.
type UpdateOrderRequest struct {
	DressType    *string          `json:"dress_type,omitempty"`
	FabricType   *string          `json:"fabric_type,omitempty"`
	OrderDate    *time.Time       `json:"order_date,omitempty"`
	TrialDate    *time.Time       `json:"trial_date,omitempty"`
	DeliveryDate *time.Time       `json:"delivery_date,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// ChangeStatusRequest body para PATCH /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// AssignOrderRequest body para PATCH /api/orders/:id/assign.
type AssignOrderRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// TimelineEntryResponse una transición registrada.
type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// OrderResponse salida de una orden con su timeline.
type OrderResponse struct {
	ID           string                  `json:"id"`
	OrderCode    string                  `json:"order_id"`
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name"`
	DressType    string                  `json:"dress_type"`
	FabricType   string                  `json:"fabric_type,omitempty"`
	OrderDate    time.Time               `json:"order_date"`
	TrialDate    *time.Time              `json:"trial_date,omitempty"`
	DeliveryDate time.Time               `json:"delivery_date"`
	Status       string                  `json:"status"`
	AssignedTo   string                  `json:"assigned_to,omitempty"`
	Amount       decimal.Decimal         `json:"amount"`
	Notes        string                  `json:"notes,omitempty"`
	CreatedBy    string                  `json:"created_by,omitempty"`
	Timeline     []TimelineEntryResponse `json:"timeline"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// OrderFilterRequest filtros de GET /api/orders.
type OrderFilterRequest struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	AssignedTo string `query:"assigned_to"`
}
