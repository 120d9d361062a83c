package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
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

type tally map[string]int

func (tally) AccessDecision(string, string, bool)       {}
func (tally) PaymentRecorded(string)                    {}
func (t tally) NotificationsCreated(kind string, n int) { t[kind] += n }

func newUseCase(t *testing.T) (*UseCase, *testutil.Fixture, tally) {
	t.Helper()
	f := testutil.New(t)
	metrics := tally{}
	uc := NewUseCase(Repos{
		Users:         f.Store.Users(),
		Orders:        f.Store.Orders(),
		Items:         f.Store.Items(),
		Analytics:     f.Store.Analytics(),
		Notifications: f.Store.Notifications(),
		Sequences:     f.Store.Sequences(),
	}, metrics, zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2030, 5, 15, 8, 0, 0, 0, time.UTC) }
	return uc, f, metrics
}

func seed(t *testing.T, f *testutil.Fixture) {
	t.Helper()
	ctx := context.Background()
	c := f.Customer(t, "Lucía", "3001112233")
	ordersUC := orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers())
	create := func(in dto.CreateOrderRequest) *dto.OrderResponse {
		in.CustomerID = c.ID
		o, err := ordersUC.Create(ctx, f.Owner.ID, in)
		require.NoError(t, err)
		return o
	}

	// Entrega mañana, asignada a staff: owner + staff.
	create(dto.CreateOrderRequest{DressType: "Vestido", DeliveryDate: testutil.Day(2030, 5, 16).Add(15 * time.Hour), AssignedTo: f.Staff.ID, Amount: testutil.D(100)})

	// Prueba mañana, asignada a un rol: solo owner.
	trial := testutil.Day(2030, 5, 16).Add(11 * time.Hour)
	create(dto.CreateOrderRequest{DressType: "Blusa", TrialDate: &trial, DeliveryDate: testutil.Day(2030, 5, 25), AssignedTo: entity.RoleStaff, Amount: testutil.D(100)})

	// Entregada con saldo: owner.
	delivered := create(dto.CreateOrderRequest{DressType: "Falda", DeliveryDate: testutil.Day(2030, 5, 1), Amount: testutil.D(300)})
	_, err := payments.NewUseCase(f.Store, f.Store.Payments(), f.Store.Orders(), nil).Record(ctx, f.Owner.ID,
		dto.RecordPaymentRequest{OrderID: delivered.ID, Amount: testutil.D(100), PaymentMode: "Cash"})
	require.NoError(t, err)
	_, err = ordersUC.ChangeStatus(ctx, f.Owner.ID, delivered.ID, dto.ChangeStatusRequest{Status: string(entity.OrderStatusDelivered)})
	require.NoError(t, err)

	// Stock bajo: owner.
	_, err = inventory.NewStockUseCase(f.Store, f.Store.Items()).Create(ctx, dto.CreateItemRequest{
		ItemName: "Hilo dorado", Category: "Thread", Quantity: testutil.D(1), Unit: "carretes",
	})
	require.NoError(t, err)
}

func TestScan_GeneraAvisosSinDuplicar(t *testing.T) {
	uc, f, metrics := newUseCase(t)
	seed(t, f)
	ctx := context.Background()

	result, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result[entity.NotificationDeliveryReminder])
	assert.Equal(t, 1, result[entity.NotificationTrialReminder])
	assert.Equal(t, 1, result[entity.NotificationLowStock])
	assert.Equal(t, 1, result[entity.NotificationPendingPayment])
	assert.Equal(t, 2, metrics[string(entity.NotificationDeliveryReminder)])

	again, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	ownerInbox, err := uc.ListForUser(ctx, f.Owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, ownerInbox, 4)
	for _, n := range ownerInbox {
		assert.Regexp(t, `^NTF\d{3}$`, n.NotificationCode)
	}

	staffInbox, err := uc.ListForUser(ctx, f.Staff.ID, false)
	require.NoError(t, err)
	require.Len(t, staffInbox, 1)
	assert.Equal(t, string(entity.NotificationDeliveryReminder), staffInbox[0].Type)
}

func TestScan_StockBajoSeRepiteCadaDia(t *testing.T) {
	uc, f, _ := newUseCase(t)
	seed(t, f)
	ctx := context.Background()
	_, err := uc.Scan(ctx)
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Date(2030, 5, 16, 8, 0, 0, 0, time.UTC) }
	result, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result[entity.NotificationLowStock])
	assert.Zero(t, result[entity.NotificationPendingPayment])
}

func TestMarkRead(t *testing.T) {
	uc, f, _ := newUseCase(t)
	seed(t, f)
	ctx := context.Background()
	_, err := uc.Scan(ctx)
	require.NoError(t, err)

	inbox, err := uc.ListForUser(ctx, f.Staff.ID, true)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	assert.ErrorIs(t, uc.MarkRead(ctx, f.Owner.ID, inbox[0].ID), domain.ErrNotFound)
	require.NoError(t, uc.MarkRead(ctx, f.Staff.ID, inbox[0].ID))

	unread, err := uc.ListForUser(ctx, f.Staff.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := uc.ListForUser(ctx, f.Staff.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
	assert.NotNil(t, all[0].ReadAt)
}
