package payments_test

import (
	"context"
	"testing"

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

type recorder struct{ modes []string }

func (r *recorder) AccessDecision(string, string, bool) {}
func (r *recorder) PaymentRecorded(mode string)         { r.modes = append(r.modes, mode) }
func (r *recorder) NotificationsCreated(string, int)    {}

func setup(t *testing.T, amount int64) (*testutil.Fixture, *payments.UseCase, *recorder, string) {
	t.Helper()
	f := testutil.New(t)
	c := f.Customer(t, "Lucía", "3001112233")
	o, err := orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers()).Create(context.Background(), f.Owner.ID, dto.CreateOrderRequest{
		CustomerID: c.ID, DressType: "Lehenga", DeliveryDate: testutil.Day(2030, 3, 1), Amount: testutil.D(amount),
	})
	require.NoError(t, err)
	rec := &recorder{}
	return f, payments.NewUseCase(f.Store, f.Store.Payments(), f.Store.Orders(), rec), rec, o.ID
}

func pay(orderID string, amount int64) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{OrderID: orderID, Amount: testutil.D(amount), PaymentMode: "Cash"}
}

func TestRecord_Escenario1000_600_400_1(t *testing.T) {
	f, uc, rec, orderID := setup(t, 1000)
	ctx := context.Background()

	first, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 600))
	require.NoError(t, err)
	assert.Equal(t, "PAY001", first.PaymentCode)
	assert.True(t, first.BalanceAmount.Equal(testutil.D(400)))
	assert.Equal(t, string(entity.PaymentStatusPartial), first.Status)

	second, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 400))
	require.NoError(t, err)
	assert.True(t, second.BalanceAmount.IsZero())
	assert.Equal(t, string(entity.PaymentStatusCompleted), second.Status)

	_, err = uc.Record(ctx, f.Staff.ID, pay(orderID, 1))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)
	assert.ErrorIs(t, err, domain.ErrConflict)

	bal, err := uc.OrderBalance(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, bal.TotalPaid.Equal(testutil.D(1000)))
	assert.True(t, bal.Balance.IsZero())
	assert.Equal(t, string(entity.PaymentStatusCompleted), bal.Status)
	require.Len(t, bal.Payments, 2)
	for _, p := range bal.Payments {
		assert.True(t, p.BalanceAmount.IsZero(), "todos los abonos reflejan el saldo actual de la orden")
		assert.True(t, p.TotalOrderAmount.Equal(testutil.D(1000)))
	}
	assert.Equal(t, []string{"Cash", "Cash"}, rec.modes)
}

func TestRecord_Validaciones(t *testing.T) {
	f, uc, _, orderID := setup(t, 1000)
	ctx := context.Background()

	_, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, f.Staff.ID, dto.RecordPaymentRequest{OrderID: orderID, Amount: testutil.D(10), PaymentMode: "Bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, f.Staff.ID, pay("no-existe", 10))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Record(ctx, f.Staff.ID, pay(orderID, 1001))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	bal, err := uc.OrderBalance(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, bal.Payments)
	assert.Equal(t, string(entity.PaymentStatusPending), bal.Status)
}

func TestRecord_MontoDecimalExacto(t *testing.T) {
	f, uc, _, orderID := setup(t, 100)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.Record(ctx, f.Staff.ID, dto.RecordPaymentRequest{
			OrderID: orderID, Amount: decimal.RequireFromString("33.33"), PaymentMode: "UPI",
		})
		require.NoError(t, err)
	}
	bal, err := uc.OrderBalance(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "0.01", bal.Balance.String())
}

func TestRecordYUpdate_RechazanMasDeDosDecimales(t *testing.T) {
	f, uc, _, orderID := setup(t, 100)
	ctx := context.Background()

	_, err := uc.Record(ctx, f.Staff.ID, dto.RecordPaymentRequest{
		OrderID: orderID, Amount: decimal.RequireFromString("33.333"), PaymentMode: "UPI",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	p, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 50))
	require.NoError(t, err)
	fino := decimal.RequireFromString("49.999")
	_, err = uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{Amount: &fino})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	bal, err := uc.OrderBalance(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(testutil.D(50)))
}

func TestUpdateYDelete_RecalculanTodos(t *testing.T) {
	f, uc, _, orderID := setup(t, 1000)
	ctx := context.Background()
	first, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 600))
	require.NoError(t, err)
	second, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 300))
	require.NoError(t, err)

	tooMuch := testutil.D(800)
	_, err = uc.Update(ctx, second.ID, dto.UpdatePaymentRequest{Amount: &tooMuch})
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	less := testutil.D(200)
	updated, err := uc.Update(ctx, second.ID, dto.UpdatePaymentRequest{Amount: &less})
	require.NoError(t, err)
	assert.True(t, updated.BalanceAmount.Equal(testutil.D(200)))

	got, err := uc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceAmount.Equal(testutil.D(200)))

	require.NoError(t, uc.Delete(ctx, first.ID))
	got, err = uc.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceAmount.Equal(testutil.D(800)))

	_, err = uc.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstadoDerivado(t *testing.T) {
	f, uc, _, orderID := setup(t, 1000)
	ctx := context.Background()
	_, err := uc.Record(ctx, f.Staff.ID, pay(orderID, 1000))
	require.NoError(t, err)

	paid, err := uc.List(ctx, dto.PaymentFilterRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Len(t, paid, 1)

	partial, err := uc.List(ctx, dto.PaymentFilterRequest{Status: "Partial"})
	require.NoError(t, err)
	assert.Empty(t, partial)

	_, err = uc.List(ctx, dto.PaymentFilterRequest{Status: "Raro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
