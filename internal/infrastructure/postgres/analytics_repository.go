package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboards y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountOrders conteos globales. DueToday cuenta entregas en [dayStart, dayEnd) no entregadas.
func (r *AnalyticsRepo) CountOrders(ctx context.Context, dayStart, dayEnd time.Time) (repository.OrderCounts, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total,
	    COUNT(*) FILTER (WHERE status <> $1)                              AS pending,
	    COUNT(*) FILTER (WHERE status = $1)                               AS delivered,
	    COUNT(*) FILTER (WHERE status <> $1
	                       AND delivery_date >= $2 AND delivery_date < $3) AS due_today
	FROM orders`

	var c repository.OrderCounts
	err := r.q.QueryRow(ctx, query, string(entity.OrderStatusDelivered), dayStart, dayEnd).
		Scan(&c.Total, &c.Pending, &c.Delivered, &c.DueToday)
	if err != nil {
		return c, fmt.Errorf("analytics.CountOrders: %w", err)
	}
	return c, nil
}

// RevenueBetween suma de abonos con payment_date en [start, end).
func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(advance_paid), 0)
	FROM payments
	WHERE payment_date >= $1 AND payment_date < $2`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.RevenueBetween: %w", err)
	}
	return total, nil
}

// RevenueByDay agrupa por día calendario en la zona horaria de start.
func (r *AnalyticsRepo) RevenueByDay(ctx context.Context, start, end time.Time) ([]repository.DailyRevenue, error) {
	const query = `
	SELECT
	    (payment_date AT TIME ZONE $3)::date AS day,
	    SUM(advance_paid)                    AS total
	FROM payments
	WHERE payment_date >= $1 AND payment_date < $2
	GROUP BY day
	ORDER BY day`

	loc := start.Location()
	tz := loc.String()
	if tz == "Local" {
		tz = "UTC"
		loc = time.UTC
	}
	rows, err := r.q.Query(ctx, query, start, end, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueByDay: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyRevenue
	for rows.Next() {
		var (
			day   time.Time
			total decimal.Decimal
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("analytics.RevenueByDay scan: %w", err)
		}
		y, m, d := day.Date()
		out = append(out, repository.DailyRevenue{Day: time.Date(y, m, d, 0, 0, 0, 0, loc), Total: total})
	}
	return out, rows.Err()
}

// OutstandingOrders órdenes con pagado < monto, por fecha de entrega.
func (r *AnalyticsRepo) OutstandingOrders(ctx context.Context) ([]repository.OutstandingOrder, error) {
	const query = `
	SELECT
	    o.id, o.order_code, o.customer_id, o.customer_name, o.dress_type,
	    o.amount,
	    COALESCE(SUM(p.advance_paid), 0)            AS paid,
	    o.amount - COALESCE(SUM(p.advance_paid), 0) AS balance,
	    o.status, o.delivery_date
	FROM orders o
	LEFT JOIN payments p ON p.order_id = o.id
	GROUP BY o.id
	HAVING COALESCE(SUM(p.advance_paid), 0) < o.amount
	ORDER BY o.delivery_date, o.seq`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.OutstandingOrders: %w", err)
	}
	defer rows.Close()

	var out []repository.OutstandingOrder
	for rows.Next() {
		var o repository.OutstandingOrder
		if err := rows.Scan(
			&o.OrderID,
			&o.OrderCode,
			&o.CustomerID,
			&o.CustomerName,
			&o.DressType,
			&o.Amount,
			&o.Paid,
			&o.Balance,
			&o.Status,
			&o.DeliveryDate,
		); err != nil {
			return nil, fmt.Errorf("analytics.OutstandingOrders scan: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountCustomers: %w", err)
	}
	return n, nil
}

// CountLowStock materiales en Low u Out of Stock.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE quantity <= min_stock`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return n, nil
}

// StaffWorkload órdenes asignadas por usuario activo, excluyendo un rol (owner).
func (r *AnalyticsRepo) StaffWorkload(ctx context.Context, excludeRole string) ([]repository.StaffWorkload, error) {
	const query = `
	SELECT
	    u.id::TEXT,
	    u.name,
	    COUNT(o.id)                                   AS total,
	    COUNT(o.id) FILTER (WHERE o.status = $2)      AS completed,
	    COUNT(o.id) FILTER (WHERE o.status <> $2)     AS pending
	FROM users u
	JOIN roles r       ON r.id = u.role_id
	LEFT JOIN orders o ON o.assigned_to = u.id::TEXT
	WHERE u.status = $3
	  AND r.name <> $1
	GROUP BY u.id, u.name
	ORDER BY u.name`

	rows, err := r.q.Query(ctx, query, excludeRole, string(entity.OrderStatusDelivered), string(entity.UserStatusActive))
	if err != nil {
		return nil, fmt.Errorf("analytics.StaffWorkload: %w", err)
	}
	defer rows.Close()

	var out []repository.StaffWorkload
	for rows.Next() {
		var w repository.StaffWorkload
		if err := rows.Scan(&w.UserID, &w.Name, &w.Total, &w.Completed, &w.Pending); err != nil {
			return nil, fmt.Errorf("analytics.StaffWorkload scan: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
