package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// PaymentFilter filtros opcionales para listar pagos.
type PaymentFilter struct {
	OrderID    string
	CustomerID string
}

// PaymentRepository define el puerto de persistencia de pagos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// ListByOrder en orden cronológico de registro.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
	CountByOrder(ctx context.Context, orderID string) (int, error)
	// SetBalances escribe el total y saldo recalculados en todos los pagos de la orden.
	SetBalances(ctx context.Context, orderID string, total, balance decimal.Decimal) error
}
