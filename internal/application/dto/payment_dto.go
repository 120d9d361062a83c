package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest body para POST /api/payments. Amount es el monto de este abono.
type RecordPaymentRequest struct {
	OrderID     string          `json:"order_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode" validate:"required"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// UpdatePaymentRequest correcciones sobre un abono (monto, medio, fecha, notas).
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentMode *string          `json:"payment_mode,omitempty"`
	PaymentDate *time.Time       `json:"payment_date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// PaymentResponse salida de un abono. Balance y estado se derivan al leer.
type PaymentResponse struct {
	ID               string          `json:"id"`
	PaymentCode      string          `json:"payment_id"`
	OrderID          string          `json:"order_id"`
	OrderCode        string          `json:"order_code,omitempty"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	TotalOrderAmount decimal.Decimal `json:"total_order_amount"`
	AdvancePaid      decimal.Decimal `json:"advance_paid"`
	BalanceAmount    decimal.Decimal `json:"balance_amount"`
	PaymentMode      string          `json:"payment_mode"`
	PaymentDate      time.Time       `json:"payment_date"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	RecordedBy       string          `json:"recorded_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderBalanceResponse resumen financiero de una orden.
type OrderBalanceResponse struct {
	OrderID   string            `json:"order_id"`
	Amount    decimal.Decimal   `json:"amount"`
	TotalPaid decimal.Decimal   `json:"total_paid"`
	Balance   decimal.Decimal   `json:"balance"`
	Status    string            `json:"status"`
	Payments  []PaymentResponse `json:"payments"`
}

// PaymentFilterRequest filtros de GET /api/payments.
type PaymentFilterRequest struct {
	OrderID    string `query:"order_id"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
}
