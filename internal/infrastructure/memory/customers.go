package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s  *Store
	tx bool
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.s.lockWrite(r.tx)()
	r.s.st.customers[c.ID] = cloneCustomer(c)
	r.s.st.customerOrder = append(r.s.st.customerOrder, c.ID)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.st.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

// List más recientes primero.
func (r *CustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var matched []*entity.Customer
	for i := len(r.s.st.customerOrder) - 1; i >= 0; i-- {
		c := r.s.st.customers[r.s.st.customerOrder[i]]
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(c.Phone, search) {
			continue
		}
		matched = append(matched, cloneCustomer(c))
	}
	return paginate(matched, f.Limit, f.Offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.s.lockWrite(r.tx)()
	existing, ok := r.s.st.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneCustomer(c)
	updated.Measurements = existing.Measurements
	r.s.st.customers[c.ID] = updated
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.customers, id)
	r.s.st.customerOrder = removeID(r.s.st.customerOrder, id)
	return nil
}

func (r *CustomerRepo) AddMeasurement(_ context.Context, customerID string, m entity.Measurement) error {
	defer r.s.lockWrite(r.tx)()
	c, ok := r.s.st.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Measurements = append(c.Measurements, m)
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
