package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/payments"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

var fixedNow = time.Date(2030, 5, 15, 12, 0, 0, 0, time.UTC)

type scenario struct {
	f         *testutil.Fixture
	orders    *orders.UseCase
	payments  *payments.UseCase
	dashboard *DashboardUseCase
	reports   *ReportsUseCase
}

// newScenario arma tres órdenes:
//   - A: entrega hoy, asignada a staff, en costura, pagada 300 de 1000
//   - B: entregada el 10/05 (a tiempo), pagada completa
//   - C: entrega mañana, prueba hoy, asignada a staff, sin pagos
func newScenario(t *testing.T) (*scenario, map[string]*dto.OrderResponse) {
	t.Helper()
	f := testutil.New(t)
	s := &scenario{
		f:         f,
		orders:    orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers()),
		payments:  payments.NewUseCase(f.Store, f.Store.Payments(), f.Store.Orders(), nil),
		dashboard: NewDashboardUseCase(f.Store.Analytics(), f.Store.Orders()),
		reports:   NewReportsUseCase(f.Store.Analytics(), f.Store.Orders()),
	}
	s.dashboard.now = func() time.Time { return fixedNow }
	s.reports.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	c := f.Customer(t, "Lucía", "3001112233")
	mk := func(dress string, delivery time.Time, trial *time.Time, amount int64, assigned string) *dto.OrderResponse {
		o, err := s.orders.Create(ctx, f.Owner.ID, dto.CreateOrderRequest{
			CustomerID: c.ID, DressType: dress, DeliveryDate: delivery, TrialDate: trial,
			Amount: testutil.D(amount), AssignedTo: assigned,
		})
		require.NoError(t, err)
		return o
	}
	payOn := func(orderID string, amount int64, day time.Time) {
		_, err := s.payments.Record(ctx, f.Owner.ID, dto.RecordPaymentRequest{
			OrderID: orderID, Amount: testutil.D(amount), PaymentMode: "Cash", PaymentDate: &day,
		})
		require.NoError(t, err)
	}

	today := testutil.Day(2030, 5, 15)
	a := mk("Vestido", today.Add(17*time.Hour), nil, 1000, f.Staff.ID)
	_, err := s.orders.ChangeStatus(ctx, f.Staff.ID, a.ID, dto.ChangeStatusRequest{Status: string(entity.OrderStatusInStitching)})
	require.NoError(t, err)
	payOn(a.ID, 300, testutil.Day(2030, 5, 2))

	b := mk("Blusa", testutil.Day(2030, 5, 10).Add(18*time.Hour), nil, 500, "")
	payOn(b.ID, 500, testutil.Day(2030, 5, 2))
	_, err = s.orders.ChangeStatus(ctx, f.Owner.ID, b.ID, dto.ChangeStatusRequest{Status: string(entity.OrderStatusDelivered)})
	require.NoError(t, err)

	trial := today.Add(10 * time.Hour)
	cOrder := mk("Lehenga", today.AddDate(0, 0, 1).Add(2*time.Hour), &trial, 800, f.Staff.ID)

	stock := inventory.NewStockUseCase(f.Store, f.Store.Items())
	_, err = stock.Create(ctx, dto.CreateItemRequest{ItemName: "Encaje", Category: "Lace", Quantity: testutil.D(2), Unit: "metros"})
	require.NoError(t, err)

	return s, map[string]*dto.OrderResponse{"A": a, "B": b, "C": cOrder}
}

func TestOwnerSummary(t *testing.T) {
	s, _ := newScenario(t)
	got, err := s.dashboard.OwnerSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalOrders)
	assert.Equal(t, 2, got.PendingOrders)
	assert.Equal(t, 1, got.DeliveredOrders)
	assert.Equal(t, 1, got.TodayDeliveries)
	assert.True(t, got.MonthlyRevenue.Equal(testutil.D(800)))
	assert.Equal(t, 2, got.PendingPayments)
	assert.True(t, got.PendingAmount.Equal(testutil.D(1500)))
	assert.Equal(t, 1, got.TotalCustomers)
	assert.Equal(t, 1, got.LowStockItems)
	assert.Equal(t, "Mayo 2030", got.DateLabel)
}

func TestStaffSummary(t *testing.T) {
	s, ids := newScenario(t)
	got, err := s.dashboard.StaffSummary(context.Background(), s.f.Staff.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, got.AssignedOrders)
	assert.Equal(t, 1, got.InProgressOrders)
	require.Len(t, got.TodayTrials, 1)
	assert.Equal(t, ids["C"].ID, got.TodayTrials[0].ID)
	assert.Len(t, got.UpcomingDelivery, 2)
}

func TestRevenueReport(t *testing.T) {
	s, _ := newScenario(t)
	got, err := s.reports.Revenue(context.Background(), "2030-05")
	require.NoError(t, err)
	assert.Equal(t, "2030-05", got.Month)
	assert.True(t, got.Total.Equal(testutil.D(800)))
	require.Len(t, got.Days, 1)
	assert.Equal(t, "2030-05-02", got.Days[0].Date)

	empty, err := s.reports.Revenue(context.Background(), "2030-04")
	require.NoError(t, err)
	assert.True(t, empty.Total.IsZero())

	_, err = s.reports.Revenue(context.Background(), "mayo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPendingPaymentsReport(t *testing.T) {
	s, ids := newScenario(t)
	got, err := s.reports.PendingPayments(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, got.Count)
	assert.True(t, got.Total.Equal(testutil.D(1500)))
	assert.Equal(t, ids["A"].ID, got.Orders[0].OrderID)
	assert.Equal(t, string(entity.PaymentStatusPartial), got.Orders[0].PaymentState)
	assert.Equal(t, string(entity.PaymentStatusPending), got.Orders[1].PaymentState)
}

func TestDeliveryReport(t *testing.T) {
	s, ids := newScenario(t)
	got, err := s.reports.Delivery(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2030-05", got.Month)
	assert.Equal(t, 1, got.Delivered)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, ids["B"].ID, got.Orders[0].ID)
}

func TestStaffWorkloadReport(t *testing.T) {
	s, _ := newScenario(t)
	got, err := s.reports.StaffWorkload(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.f.Staff.ID, got[0].UserID)
	assert.Equal(t, 2, got[0].Total)
	assert.Equal(t, 2, got[0].Pending)
	assert.Equal(t, 0, got[0].Completed)
}

func TestDeliveredOnTime(t *testing.T) {
	delivery := testutil.Day(2030, 5, 10)
	onTime := &entity.Order{DeliveryDate: delivery, Timeline: []entity.TimelineEntry{
		{Status: entity.OrderStatusDelivered, Date: delivery.Add(20 * time.Hour)},
	}}
	late := &entity.Order{DeliveryDate: delivery, Timeline: []entity.TimelineEntry{
		{Status: entity.OrderStatusDelivered, Date: delivery.AddDate(0, 0, 1)},
	}}
	assert.True(t, deliveredOnTime(onTime))
	assert.False(t, deliveredOnTime(late))
	assert.False(t, deliveredOnTime(&entity.Order{DeliveryDate: delivery}))
}
