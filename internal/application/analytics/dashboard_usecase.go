// Package analytics contiene los dashboards del owner y del personal, y los reportes de
// ingresos, pagos pendientes, entregas y carga de trabajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// DashboardUseCase genera los resúmenes del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y OrderRepository para las
// listas del personal.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, orderRepo repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, orderRepo: orderRepo, now: time.Now}
}

// OwnerSummary construye el OwnerDashboardDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountOrders(hoy)        → totales y entregas de hoy
//  2. RevenueBetween(mes)     → ingresos del mes (suma de abonos)
//  3. OutstandingOrders       → pagos pendientes
//  4. CountCustomers + CountLowStock
func (uc *DashboardUseCase) OwnerSummary(ctx context.Context) (*dto.OwnerDashboardDTO, error) {
	now := uc.now()
	todayStart, todayEnd := dayRange(now)
	monthStart, monthEnd := monthRange(now)

	type countsResult struct {
		counts repository.OrderCounts
		err    error
	}
	type revenueResult struct {
		total decimal.Decimal
		err   error
	}
	type outstandingResult struct {
		rows []repository.OutstandingOrder
		err  error
	}
	type tallyResult struct {
		customers, lowStock int
		err                 error
	}

	countsCh := make(chan countsResult, 1)
	revenueCh := make(chan revenueResult, 1)
	outstandingCh := make(chan outstandingResult, 1)
	tallyCh := make(chan tallyResult, 1)

	go func() {
		c, err := uc.analyticsRepo.CountOrders(ctx, todayStart, todayEnd)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.RevenueBetween(ctx, monthStart, monthEnd)
		revenueCh <- revenueResult{t, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.OutstandingOrders(ctx)
		outstandingCh <- outstandingResult{rows, err}
	}()
	go func() {
		customers, err := uc.analyticsRepo.CountCustomers(ctx)
		if err != nil {
			tallyCh <- tallyResult{err: err}
			return
		}
		low, err := uc.analyticsRepo.CountLowStock(ctx)
		tallyCh <- tallyResult{customers, low, err}
	}()

	counts := <-countsCh
	revenue := <-revenueCh
	outstanding := <-outstandingCh
	tally := <-tallyCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de órdenes: %w", counts.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", revenue.err)
	}
	if outstanding.err != nil {
		return nil, fmt.Errorf("dashboard: pagos pendientes: %w", outstanding.err)
	}
	if tally.err != nil {
		return nil, fmt.Errorf("dashboard: clientes e inventario: %w", tally.err)
	}

	pendingAmount := decimal.Zero
	for _, o := range outstanding.rows {
		pendingAmount = pendingAmount.Add(o.Balance)
	}

	return &dto.OwnerDashboardDTO{
		TotalOrders:     counts.counts.Total,
		PendingOrders:   counts.counts.Pending,
		DeliveredOrders: counts.counts.Delivered,
		TodayDeliveries: counts.counts.DueToday,
		MonthlyRevenue:  revenue.total.Round(2),
		PendingPayments: len(outstanding.rows),
		PendingAmount:   pendingAmount.Round(2),
		TotalCustomers:  tally.customers,
		LowStockItems:   tally.lowStock,
		DateLabel:       monthLabel(now),
	}, nil
}

// StaffSummary resumen para el usuario autenticado: órdenes asignadas, pruebas de hoy y
// entregas en las próximas 24 horas.
func (uc *DashboardUseCase) StaffSummary(ctx context.Context, userID string) (*dto.StaffDashboardDTO, error) {
	now := uc.now()
	todayStart, todayEnd := dayRange(now)
	horizon := now.Add(24 * time.Hour)

	assigned, err := uc.orderRepo.List(ctx, repository.OrderFilter{AssignedTo: userID})
	if err != nil {
		return nil, fmt.Errorf("dashboard: órdenes asignadas: %w", err)
	}
	trials, err := uc.orderRepo.List(ctx, repository.OrderFilter{
		AssignedTo: userID, TrialFrom: &todayStart, TrialTo: &todayEnd,
		ExcludeStatus: entity.OrderStatusDelivered,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: pruebas de hoy: %w", err)
	}
	deliveries, err := uc.orderRepo.List(ctx, repository.OrderFilter{
		AssignedTo: userID, DeliveryFrom: &now, DeliveryTo: &horizon,
		ExcludeStatus: entity.OrderStatusDelivered,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: entregas próximas: %w", err)
	}

	out := &dto.StaffDashboardDTO{
		AssignedOrders:   len(assigned),
		TodayTrials:      toOrderResponses(trials),
		UpcomingDelivery: toOrderResponses(deliveries),
	}
	for _, o := range assigned {
		if o.Status != entity.OrderStatusDelivered && o.Status != entity.OrderStatusNew {
			out.InProgressOrders++
		}
	}
	return out, nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *orders.ToOrderResponse(o))
	}
	return out
}

// dayRange [00:00 de hoy, 00:00 de mañana).
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// monthRange [día 1 del mes, día 1 del mes siguiente).
func monthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
