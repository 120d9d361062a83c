package repository

import "context"

// SequenceRepository entrega contadores monótonos por tipo de entidad (CUST, ORD...).
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
