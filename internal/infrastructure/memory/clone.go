package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.LastLoginAt = cloneTime(u.LastLoginAt)
	return &c
}

func cloneRole(r *entity.Role) *entity.Role {
	c := *r
	c.Modules = entity.NewModuleSet(r.Modules.Slice()...)
	c.Permissions = make(entity.VerbSet, len(r.Permissions))
	for v := range r.Permissions {
		c.Permissions[v] = struct{}{}
	}
	return &c
}

func cloneCustomer(cu *entity.Customer) *entity.Customer {
	c := *cu
	c.Measurements = append([]entity.Measurement(nil), cu.Measurements...)
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.TrialDate = cloneTime(o.TrialDate)
	c.Timeline = append([]entity.TimelineEntry(nil), o.Timeline...)
	return &c
}

func clonePayment(p *entity.Payment) *entity.Payment {
	c := *p
	return &c
}

func cloneItem(i *entity.InventoryItem) *entity.InventoryItem {
	c := *i
	c.PurchaseCost = cloneDecimal(i.PurchaseCost)
	c.LastRestockedAt = cloneTime(i.LastRestockedAt)
	return &c
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	c := *n
	c.DueDate = cloneTime(n.DueDate)
	c.ReadAt = cloneTime(n.ReadAt)
	return &c
}
