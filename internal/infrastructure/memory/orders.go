package memory

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s  *Store
	tx bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.lockWrite(r.tx)()
	r.s.st.orders[o.ID] = cloneOrder(o)
	r.s.st.orderOrder = append(r.s.st.orderOrder, o.ID)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

// GetForUpdate en memoria la exclusión la da Store.Run.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// List más recientes primero.
func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for i := len(r.s.st.orderOrder) - 1; i >= 0; i-- {
		o := r.s.st.orders[r.s.st.orderOrder[i]]
		if matchOrder(o, f) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func matchOrder(o *entity.Order, f repository.OrderFilter) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.ExcludeStatus != "" && o.Status == f.ExcludeStatus {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.AssignedTo != "" && o.AssignedTo != f.AssignedTo {
		return false
	}
	if !inRange(&o.DeliveryDate, f.DeliveryFrom, f.DeliveryTo) {
		return false
	}
	if (f.TrialFrom != nil || f.TrialTo != nil) && (o.TrialDate == nil || !inRange(o.TrialDate, f.TrialFrom, f.TrialTo)) {
		return false
	}
	return true
}

// inRange [from, to); límites nil no restringen.
func inRange(t *time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	defer r.s.lockWrite(r.tx)()
	existing, ok := r.s.st.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneOrder(o)
	updated.Timeline = existing.Timeline
	r.s.st.orders[o.ID] = updated
	return nil
}

func (r *OrderRepo) AppendTimeline(_ context.Context, orderID string, e entity.TimelineEntry) error {
	defer r.s.lockWrite(r.tx)()
	o, ok := r.s.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Timeline = append(o.Timeline, e)
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.orders, id)
	r.s.st.orderOrder = removeID(r.s.st.orderOrder, id)
	return nil
}

func (r *OrderRepo) CountByCustomer(_ context.Context, customerID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, o := range r.s.st.orders {
		if o.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) CountReferencingUser(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, o := range r.s.st.orders {
		if o.CreatedBy == userID || o.AssignedTo == userID {
			n++
		}
	}
	return n, nil
}
