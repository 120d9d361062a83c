package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/ledger"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// ReportsUseCase reportes del módulo reports.
type ReportsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
	now           func() time.Time
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(analyticsRepo repository.AnalyticsRepository, orderRepo repository.OrderRepository) *ReportsUseCase {
	return &ReportsUseCase{analyticsRepo: analyticsRepo, orderRepo: orderRepo, now: time.Now}
}

// Revenue ingresos por día del mes indicado (YYYY-MM; vacío = mes en curso).
func (uc *ReportsUseCase) Revenue(ctx context.Context, month string) (*dto.RevenueReportDTO, error) {
	start, end, err := uc.parseMonth(month)
	if err != nil {
		return nil, err
	}
	days, err := uc.analyticsRepo.RevenueByDay(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ingresos: %w", err)
	}
	out := &dto.RevenueReportDTO{
		Month: start.Format("2006-01"),
		Total: decimal.Zero,
		Days:  make([]dto.DailyRevenueDTO, 0, len(days)),
	}
	for _, d := range days {
		out.Total = out.Total.Add(d.Total)
		out.Days = append(out.Days, dto.DailyRevenueDTO{Date: d.Day.Format(time.DateOnly), Total: d.Total.Round(2)})
	}
	out.Total = out.Total.Round(2)
	return out, nil
}

// PendingPayments órdenes con saldo (Pending o Partial), por fecha de entrega.
func (uc *ReportsUseCase) PendingPayments(ctx context.Context) (*dto.PendingPaymentsReportDTO, error) {
	rows, err := uc.analyticsRepo.OutstandingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de pagos pendientes: %w", err)
	}
	out := &dto.PendingPaymentsReportDTO{
		Count:  len(rows),
		Total:  decimal.Zero,
		Orders: make([]dto.PendingPaymentDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Total = out.Total.Add(r.Balance)
		out.Orders = append(out.Orders, dto.PendingPaymentDTO{
			OrderID:      r.OrderID,
			OrderCode:    r.OrderCode,
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			DressType:    r.DressType,
			Amount:       r.Amount,
			Paid:         r.Paid,
			Balance:      r.Balance,
			PaymentState: string(ledger.StatusOf(r.Amount, r.Balance)),
			OrderStatus:  r.Status,
			DeliveryDate: r.DeliveryDate,
		})
	}
	return out, nil
}

// Delivery órdenes entregadas cuya fecha de entrega cae en el mes. OnTime cuenta las que
// pasaron a Delivered a más tardar el día de entrega.
func (uc *ReportsUseCase) Delivery(ctx context.Context, month string) (*dto.DeliveryReportDTO, error) {
	start, end, err := uc.parseMonth(month)
	if err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{
		Status: entity.OrderStatusDelivered, DeliveryFrom: &start, DeliveryTo: &end,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de entregas: %w", err)
	}
	out := &dto.DeliveryReportDTO{
		Month:     start.Format("2006-01"),
		Delivered: len(list),
		Orders:    make([]dto.OrderResponse, 0, len(list)),
	}
	for _, o := range list {
		if deliveredOnTime(o) {
			out.OnTime++
		}
		out.Orders = append(out.Orders, *orders.ToOrderResponse(o))
	}
	return out, nil
}

// deliveredOnTime busca la última transición a Delivered en el timeline.
func deliveredOnTime(o *entity.Order) bool {
	for i := len(o.Timeline) - 1; i >= 0; i-- {
		if o.Timeline[i].Status == entity.OrderStatusDelivered {
			_, dayEnd := dayRange(o.DeliveryDate)
			return o.Timeline[i].Date.Before(dayEnd)
		}
	}
	return false
}

// StaffWorkload carga por usuario activo que no sea owner.
func (uc *ReportsUseCase) StaffWorkload(ctx context.Context) ([]dto.StaffWorkloadDTO, error) {
	rows, err := uc.analyticsRepo.StaffWorkload(ctx, entity.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("reporte de carga: %w", err)
	}
	out := make([]dto.StaffWorkloadDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StaffWorkloadDTO{
			UserID: r.UserID, Name: r.Name, Total: r.Total, Completed: r.Completed, Pending: r.Pending,
		})
	}
	return out, nil
}

func (uc *ReportsUseCase) parseMonth(month string) (time.Time, time.Time, error) {
	if month == "" {
		start, end := monthRange(uc.now())
		return start, end, nil
	}
	t, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("month", "formato esperado YYYY-MM")
	}
	start, end := monthRange(t)
	return start, end, nil
}
