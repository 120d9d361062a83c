package repository

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar órdenes (campos vacíos no filtran).
type OrderFilter struct {
	Status        entity.OrderStatus
	ExcludeStatus entity.OrderStatus
	CustomerID    string
	AssignedTo    string
	DeliveryFrom  *time.Time
	DeliveryTo    *time.Time // exclusivo
	TrialFrom     *time.Time
	TrialTo       *time.Time // exclusivo
}

// OrderRepository define el puerto de persistencia de órdenes y su timeline.
type OrderRepository interface {
	// Create inserta la orden junto con las entradas iniciales del timeline.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Update persiste los campos escalares (no toca el timeline).
	Update(ctx context.Context, order *entity.Order) error
	AppendTimeline(ctx context.Context, orderID string, entry entity.TimelineEntry) error
	Delete(ctx context.Context, id string) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	// CountReferencingUser órdenes creadas por o asignadas al usuario.
	CountReferencingUser(ctx context.Context, userID string) (int, error)
}
