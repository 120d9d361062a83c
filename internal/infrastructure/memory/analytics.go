package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de dashboards sobre el estado en memoria.
type AnalyticsRepo struct {
	s  *Store
	tx bool
}

func (r *AnalyticsRepo) CountOrders(_ context.Context, dayStart, dayEnd time.Time) (repository.OrderCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var c repository.OrderCounts
	for _, o := range r.s.st.orders {
		c.Total++
		if o.Status == entity.OrderStatusDelivered {
			c.Delivered++
			continue
		}
		c.Pending++
		if inRange(&o.DeliveryDate, &dayStart, &dayEnd) {
			c.DueToday++
		}
	}
	return c, nil
}

func (r *AnalyticsRepo) RevenueBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, p := range r.s.st.payments {
		if inRange(&p.PaymentDate, &start, &end) {
			total = total.Add(p.AdvancePaid)
		}
	}
	return total, nil
}

func (r *AnalyticsRepo) RevenueByDay(_ context.Context, start, end time.Time) ([]repository.DailyRevenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byDay := make(map[string]*repository.DailyRevenue)
	for _, p := range r.s.st.payments {
		if !inRange(&p.PaymentDate, &start, &end) {
			continue
		}
		key := p.PaymentDate.Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			y, m, day := p.PaymentDate.Date()
			d = &repository.DailyRevenue{Day: time.Date(y, m, day, 0, 0, 0, 0, p.PaymentDate.Location()), Total: decimal.Zero}
			byDay[key] = d
		}
		d.Total = d.Total.Add(p.AdvancePaid)
	}
	out := make([]repository.DailyRevenue, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *AnalyticsRepo) OutstandingOrders(_ context.Context) ([]repository.OutstandingOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	paid := make(map[string]decimal.Decimal)
	for _, p := range r.s.st.payments {
		paid[p.OrderID] = paid[p.OrderID].Add(p.AdvancePaid)
	}
	var out []repository.OutstandingOrder
	for _, o := range r.s.st.orders {
		sum := paid[o.ID]
		if !sum.LessThan(o.Amount) {
			continue
		}
		out = append(out, repository.OutstandingOrder{
			OrderID:      o.ID,
			OrderCode:    o.OrderCode,
			CustomerID:   o.CustomerID,
			CustomerName: o.CustomerName,
			DressType:    o.DressType,
			Amount:       o.Amount,
			Paid:         sum,
			Balance:      o.Amount.Sub(sum),
			Status:       string(o.Status),
			DeliveryDate: o.DeliveryDate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate) })
	return out, nil
}

func (r *AnalyticsRepo) CountCustomers(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.st.customers), nil
}

func (r *AnalyticsRepo) CountLowStock(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, item := range r.s.st.items {
		if inventory.NeedsRestock(item) {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) StaffWorkload(_ context.Context, excludeRole string) ([]repository.StaffWorkload, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.StaffWorkload
	for _, u := range r.s.st.users {
		role, ok := r.s.st.roles[u.RoleID]
		if !ok || role.Name == excludeRole || !u.IsActive() {
			continue
		}
		w := repository.StaffWorkload{UserID: u.ID, Name: u.Name}
		for _, o := range r.s.st.orders {
			if o.AssignedTo != u.ID {
				continue
			}
			w.Total++
			if o.Status == entity.OrderStatusDelivered {
				w.Completed++
			} else {
				w.Pending++
			}
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
