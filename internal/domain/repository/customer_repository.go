package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// CustomerFilter filtros para listar clientes. Search compara nombre o teléfono.
type CustomerFilter struct {
	Search string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID incluye el historial de medidas en orden cronológico.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	AddMeasurement(ctx context.Context, customerID string, m entity.Measurement) error
}
