package ports

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Orders    repository.OrderRepository
	Payments  repository.PaymentRepository
	Items     repository.InventoryItemRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y ninguna escritura queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
