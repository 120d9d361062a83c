package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerDashboardDTO respuesta de GET /api/dashboard/owner.
type OwnerDashboardDTO struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	TodayDeliveries int             `json:"today_deliveries"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"` // suma de abonos del mes
	PendingPayments int             `json:"pending_payments"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	TotalCustomers  int             `json:"total_customers"`
	LowStockItems   int             `json:"low_stock_items"`
	DateLabel       string          `json:"date_label"` // ej: "Octubre 2026"
}

// StaffDashboardDTO respuesta de GET /api/dashboard/staff para el usuario autenticado.
type StaffDashboardDTO struct {
	AssignedOrders   int             `json:"assigned_orders"`
	InProgressOrders int             `json:"in_progress_orders"`
	TodayTrials      []OrderResponse `json:"today_trials"`
	UpcomingDelivery []OrderResponse `json:"upcoming_deliveries"` // próximas 24h
}

// DailyRevenueDTO ingresos de un día.
type DailyRevenueDTO struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// RevenueReportDTO respuesta de GET /api/reports/revenue.
type RevenueReportDTO struct {
	Month string            `json:"month"` // YYYY-MM
	Total decimal.Decimal   `json:"total"`
	Days  []DailyRevenueDTO `json:"days"`
}

// PendingPaymentDTO orden con saldo pendiente.
type PendingPaymentDTO struct {
	OrderID      string          `json:"order_id"`
	OrderCode    string          `json:"order_code"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	DressType    string          `json:"dress_type"`
	Amount       decimal.Decimal `json:"amount"`
	Paid         decimal.Decimal `json:"paid"`
	Balance      decimal.Decimal `json:"balance"`
	PaymentState string          `json:"payment_status"`
	OrderStatus  string          `json:"order_status"`
	DeliveryDate time.Time       `json:"delivery_date"`
}

// PendingPaymentsReportDTO respuesta de GET /api/reports/pending-payments.
type PendingPaymentsReportDTO struct {
	Count  int                 `json:"count"`
	Total  decimal.Decimal     `json:"total"`
	Orders []PendingPaymentDTO `json:"orders"`
}

// DeliveryReportDTO respuesta de GET /api/reports/delivery: órdenes entregadas en el mes.
type DeliveryReportDTO struct {
	Month     string          `json:"month"`
	Delivered int             `json:"delivered"`
	OnTime    int             `json:"on_time"`
	Orders    []OrderResponse `json:"orders"`
}

// StaffWorkloadDTO carga por usuario.
type StaffWorkloadDTO struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
}
