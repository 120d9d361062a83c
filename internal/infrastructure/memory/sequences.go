package memory

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores por nombre.
type SequenceRepo struct {
	s  *Store
	tx bool
}

func (r *SequenceRepo) Next(_ context.Context, name string) (int64, error) {
	defer r.s.lockWrite(r.tx)()
	r.s.st.counters[name]++
	return r.s.st.counters[name], nil
}
