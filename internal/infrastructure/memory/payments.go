package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación en memoria de PaymentRepository.
type PaymentRepo struct {
	s  *Store
	tx bool
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	defer r.s.lockWrite(r.tx)()
	r.s.st.payments[p.ID] = clonePayment(p)
	r.s.st.paymentOrder = append(r.s.st.paymentOrder, p.ID)
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.payments[id]
	if !ok {
		return nil, nil
	}
	return r.withOrderCode(p), nil
}

func (r *PaymentRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Payment
	for _, id := range r.s.st.paymentOrder {
		if p := r.s.st.payments[id]; p.OrderID == orderID {
			out = append(out, r.withOrderCode(p))
		}
	}
	return out, nil
}

// List más recientes primero.
func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Payment
	for i := len(r.s.st.paymentOrder) - 1; i >= 0; i-- {
		p := r.s.st.payments[r.s.st.paymentOrder[i]]
		if f.OrderID != "" && p.OrderID != f.OrderID {
			continue
		}
		if f.CustomerID != "" && p.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, r.withOrderCode(p))
	}
	return out, nil
}

func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.payments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.payments[p.ID] = clonePayment(p)
	return nil
}

func (r *PaymentRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.payments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.payments, id)
	r.s.st.paymentOrder = removeID(r.s.st.paymentOrder, id)
	return nil
}

func (r *PaymentRepo) CountByOrder(_ context.Context, orderID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.st.payments {
		if p.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

func (r *PaymentRepo) SetBalances(_ context.Context, orderID string, total, balance decimal.Decimal) error {
	defer r.s.lockWrite(r.tx)()
	for _, p := range r.s.st.payments {
		if p.OrderID == orderID {
			p.TotalOrderAmount = total
			p.BalanceAmount = balance
		}
	}
	return nil
}

// withOrderCode requiere el lock tomado.
func (r *PaymentRepo) withOrderCode(p *entity.Payment) *entity.Payment {
	c := clonePayment(p)
	if o, ok := r.s.st.orders[p.OrderID]; ok {
		c.OrderCode = o.OrderCode
	}
	return c
}
