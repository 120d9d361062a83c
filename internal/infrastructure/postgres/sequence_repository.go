package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores en la tabla counters. Dentro de una tx el UPSERT bloquea la fila,
// así que dos altas concurrentes nunca reciben el mismo número.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var v int64
	if err := r.q.QueryRow(ctx, query, name).Scan(&v); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return v, nil
}
