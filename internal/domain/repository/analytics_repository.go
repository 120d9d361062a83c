package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCounts conteos para el dashboard del owner.
type OrderCounts struct {
	Total     int
	Pending   int // distinto de Delivered
	Delivered int
	DueToday  int // entrega hoy y aún no entregadas
}

// DailyRevenue ingresos (suma de abonos) de un día.
type DailyRevenue struct {
	Day   time.Time
	Total decimal.Decimal
}

// OutstandingOrder orden con saldo pendiente (pagos Pending o Partial).
type OutstandingOrder struct {
	OrderID      string
	OrderCode    string
	CustomerID   string
	CustomerName string
	DressType    string
	Amount       decimal.Decimal
	Paid         decimal.Decimal
	Balance      decimal.Decimal
	Status       string
	DeliveryDate time.Time
}

// StaffWorkload carga de trabajo por usuario asignado.
type StaffWorkload struct {
	UserID    string
	Name      string
	Total     int
	Completed int
	Pending   int
}

// AnalyticsRepository consultas de solo lectura para dashboards y reportes.
type AnalyticsRepository interface {
	// CountOrders conteos globales; dayStart/dayEnd delimitan "hoy".
	CountOrders(ctx context.Context, dayStart, dayEnd time.Time) (OrderCounts, error)
	// RevenueBetween suma de abonos con payment_date en [start, end).
	RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	RevenueByDay(ctx context.Context, start, end time.Time) ([]DailyRevenue, error)
	// OutstandingOrders órdenes cuyo total pagado es menor al monto.
	OutstandingOrders(ctx context.Context) ([]OutstandingOrder, error)
	CountCustomers(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	// StaffWorkload por cada usuario activo cuyo rol no sea excludeRole.
	StaffWorkload(ctx context.Context, excludeRole string) ([]StaffWorkload, error)
}
