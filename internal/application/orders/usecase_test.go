package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/payments"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

type env struct {
	f        *testutil.Fixture
	orders   *orders.UseCase
	payments *payments.UseCase
	customer *dto.CustomerResponse
}

func newEnv(t *testing.T) *env {
	f := testutil.New(t)
	return &env{
		f:        f,
		orders:   orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers()),
		payments: payments.NewUseCase(f.Store, f.Store.Payments(), f.Store.Orders(), nil),
		customer: f.Customer(t, "Lucía", "3001112233"),
	}
}

func (e *env) create(t *testing.T, amount int64) *dto.OrderResponse {
	t.Helper()
	trial := testutil.Day(2030, 5, 10)
	o, err := e.orders.Create(context.Background(), e.f.Owner.ID, dto.CreateOrderRequest{
		CustomerID:   e.customer.ID,
		DressType:    "Vestido de novia",
		FabricType:   "Seda",
		TrialDate:    &trial,
		DeliveryDate: testutil.Day(2030, 5, 20),
		AssignedTo:   e.f.Staff.ID,
		Amount:       testutil.D(amount),
	})
	require.NoError(t, err)
	return o
}

func TestCreate_EstadoNewYTimelineSembrado(t *testing.T) {
	e := newEnv(t)
	o := e.create(t, 1000)

	assert.Equal(t, "ORD001", o.OrderCode)
	assert.Equal(t, string(entity.OrderStatusNew), o.Status)
	assert.Equal(t, "Lucía", o.CustomerName)
	assert.Equal(t, e.f.Owner.ID, o.CreatedBy)
	require.Len(t, o.Timeline, 1)
	assert.Equal(t, string(entity.OrderStatusNew), o.Timeline[0].Status)

	second := e.create(t, 500)
	assert.Equal(t, "ORD002", second.OrderCode)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	delivery := testutil.Day(2030, 5, 20)
	lateTrial := delivery.Add(24 * time.Hour)
	cases := []struct {
		name  string
		in    dto.CreateOrderRequest
		field string
	}{
		{"sin cliente", dto.CreateOrderRequest{DressType: "x", DeliveryDate: delivery, Amount: testutil.D(1)}, "customer_id"},
		{"cliente inexistente", dto.CreateOrderRequest{CustomerID: "nope", DressType: "x", DeliveryDate: delivery, Amount: testutil.D(1)}, "customer_id"},
		{"sin prenda", dto.CreateOrderRequest{CustomerID: e.customer.ID, DeliveryDate: delivery, Amount: testutil.D(1)}, "dress_type"},
		{"sin entrega", dto.CreateOrderRequest{CustomerID: e.customer.ID, DressType: "x", Amount: testutil.D(1)}, "delivery_date"},
		{"monto cero", dto.CreateOrderRequest{CustomerID: e.customer.ID, DressType: "x", DeliveryDate: delivery}, "amount"},
		{"monto con tres decimales", dto.CreateOrderRequest{CustomerID: e.customer.ID, DressType: "x", DeliveryDate: delivery, Amount: decimal.RequireFromString("10.005")}, "amount"},
		{"prueba después de entrega", dto.CreateOrderRequest{CustomerID: e.customer.ID, DressType: "x", DeliveryDate: delivery, TrialDate: &lateTrial, Amount: testutil.D(1)}, "trial_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.orders.Create(ctx, e.f.Owner.ID, tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestChangeStatus_AgregaUnaEntradaPorLlamada(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.create(t, 1000)

	steps := []entity.OrderStatus{
		entity.OrderStatusInStitching, entity.OrderStatusTrialDone, entity.OrderStatusInStitching,
		entity.OrderStatusReady, entity.OrderStatusReady, entity.OrderStatusDelivered,
	}
	for i, st := range steps {
		got, err := e.orders.ChangeStatus(ctx, e.f.Staff.ID, o.ID, dto.ChangeStatusRequest{Status: string(st), Notes: "paso"})
		require.NoError(t, err)
		assert.Equal(t, string(st), got.Status)
		assert.Len(t, got.Timeline, i+2)
	}

	stored, err := e.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Timeline, len(steps)+1)
	last := stored.Timeline[len(stored.Timeline)-1]
	assert.Equal(t, string(entity.OrderStatusDelivered), last.Status)
	assert.Equal(t, e.f.Staff.ID, last.ChangedBy)
	assert.Equal(t, "paso", last.Notes)
}

func TestChangeStatus_EstadoInvalido(t *testing.T) {
	e := newEnv(t)
	o := e.create(t, 1000)
	_, err := e.orders.ChangeStatus(context.Background(), e.f.Staff.ID, o.ID, dto.ChangeStatusRequest{Status: "Perdida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := e.orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Timeline, 1)

	_, err = e.orders.ChangeStatus(context.Background(), e.f.Staff.ID, "no-existe", dto.ChangeStatusRequest{Status: "Ready"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignYListarPorResponsable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.create(t, 1000)
	e.create(t, 300)

	_, err := e.orders.Assign(ctx, o.ID, dto.AssignOrderRequest{AssignedTo: e.f.Owner.ID})
	require.NoError(t, err)

	mine, err := e.orders.List(ctx, dto.OrderFilterRequest{AssignedTo: e.f.Owner.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, o.ID, mine[0].ID)

	_, err = e.orders.List(ctx, dto.OrderFilterRequest{Status: "Perdida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_MontoRecalculaSaldos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.create(t, 1000)

	_, err := e.payments.Record(ctx, e.f.Owner.ID, dto.RecordPaymentRequest{OrderID: o.ID, Amount: testutil.D(600), PaymentMode: "Cash"})
	require.NoError(t, err)

	low := testutil.D(500)
	_, err = e.orders.Update(ctx, o.ID, dto.UpdateOrderRequest{Amount: &low})
	assert.ErrorIs(t, err, domain.ErrAmountBelowPaid)

	fino := decimal.RequireFromString("1200.001")
	_, err = e.orders.Update(ctx, o.ID, dto.UpdateOrderRequest{Amount: &fino})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	higher := testutil.D(1200)
	_, err = e.orders.Update(ctx, o.ID, dto.UpdateOrderRequest{Amount: &higher})
	require.NoError(t, err)

	bal, err := e.payments.OrderBalance(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(testutil.D(600)))
	require.Len(t, bal.Payments, 1)
	assert.True(t, bal.Payments[0].TotalOrderAmount.Equal(testutil.D(1200)))
	assert.True(t, bal.Payments[0].BalanceAmount.Equal(testutil.D(600)))
}

func TestDelete_ConPagos_Conflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	paid := e.create(t, 1000)
	_, err := e.payments.Record(ctx, e.f.Owner.ID, dto.RecordPaymentRequest{OrderID: paid.ID, Amount: testutil.D(100), PaymentMode: "UPI"})
	require.NoError(t, err)

	assert.ErrorIs(t, e.orders.Delete(ctx, paid.ID), domain.ErrOrderHasPayments)

	unpaid := e.create(t, 200)
	require.NoError(t, e.orders.Delete(ctx, unpaid.ID))
	_, err = e.orders.GetByID(ctx, unpaid.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
