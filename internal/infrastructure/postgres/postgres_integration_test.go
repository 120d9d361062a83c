//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/app"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
)

// Ejecutar con: BOUTIQUE_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
// La base se vacía (migración down + up) al inicio de cada test.

func openDB(t *testing.T) *app.Container {
	t.Helper()
	dsn := os.Getenv("BOUTIQUE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BOUTIQUE_TEST_DATABASE_URL no definido")
	}
	require.NoError(t, postgres.Migrate(dsn, false))
	require.NoError(t, postgres.Migrate(dsn, true))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return app.Build(app.PostgresRepositories(pool, postgres.NewTxRunner(pool)), app.Options{Log: zerolog.Nop()})
}

func newOrder(t *testing.T, c *app.Container, amount string) *dto.OrderResponse {
	t.Helper()
	ctx := context.Background()
	customer, err := c.Customers.Create(ctx, dto.CreateCustomerRequest{Name: "Lucía Gómez", Phone: "3001112233"})
	require.NoError(t, err)
	o, err := c.Orders.Create(ctx, uuid.NewString(), dto.CreateOrderRequest{
		CustomerID:   customer.ID,
		DressType:    "Lehenga",
		DeliveryDate: time.Now().AddDate(0, 0, 15),
		Amount:       decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return o
}

// ────────────────────────────────────────────────────────────────
// Órdenes y abonos
// ────────────────────────────────────────────────────────────────

func TestPostgres_AbonosRecalculanSaldoDeTodos(t *testing.T) {
	c := openDB(t)
	ctx := context.Background()
	o := newOrder(t, c, "1000")
	actor := uuid.NewString()

	first, err := c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.NewFromInt(600), PaymentMode: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, "PAY001", first.PaymentCode)
	assert.True(t, first.BalanceAmount.Equal(decimal.NewFromInt(400)))

	_, err = c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.NewFromInt(400), PaymentMode: "UPI"})
	require.NoError(t, err)

	// SetBalances alcanza también al primer abono.
	got, err := c.Payments.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceAmount.IsZero())
	assert.Equal(t, string(entity.PaymentStatusCompleted), got.Status)

	_, err = c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.NewFromInt(1), PaymentMode: "Cash"})
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)
}

func TestPostgres_TimelineYBorradoConPagos(t *testing.T) {
	c := openDB(t)
	ctx := context.Background()
	o := newOrder(t, c, "500")
	actor := uuid.NewString()

	updated, err := c.Orders.ChangeStatus(ctx, actor, o.ID, dto.ChangeStatusRequest{Status: string(entity.OrderStatusInStitching), Notes: "corte"})
	require.NoError(t, err)
	require.Len(t, updated.Timeline, 2)
	assert.Equal(t, string(entity.OrderStatusNew), updated.Timeline[0].Status)
	assert.Equal(t, string(entity.OrderStatusInStitching), updated.Timeline[1].Status)

	_, err = c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.NewFromInt(100), PaymentMode: "Card"})
	require.NoError(t, err)

	err = c.Orders.Delete(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderHasPayments)
	assert.ErrorIs(t, err, domain.ErrConflict)

	still, err := c.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, still.Timeline, 2)
}

func TestPostgres_AbonosConcurrentesNoSuperanElMonto(t *testing.T) {
	c := openDB(t)
	ctx := context.Background()
	o := newOrder(t, c, "100")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
		others   []error
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Payments.Record(ctx, uuid.NewString(), dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.NewFromInt(20), PaymentMode: "Cash"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrAmountExceedsBalance):
				rejected++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, rejected)
	bal, err := c.Payments.OrderBalance(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, bal.Balance.IsZero())
}

// ────────────────────────────────────────────────────────────────
// Escala NUMERIC(12,2) e IDs mal formados
// ────────────────────────────────────────────────────────────────

func TestPostgres_MontosConDosDecimalesExactos(t *testing.T) {
	c := openDB(t)
	ctx := context.Background()
	o := newOrder(t, c, "100")
	actor := uuid.NewString()

	for i := 0; i < 3; i++ {
		_, err := c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.RequireFromString("33.33"), PaymentMode: "UPI"})
		require.NoError(t, err)
	}
	_, err := c.Payments.Record(ctx, actor, dto.RecordPaymentRequest{OrderID: o.ID, Amount: decimal.RequireFromString("0.001"), PaymentMode: "UPI"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bal, err := c.Payments.OrderBalance(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(decimal.RequireFromString("0.01")), bal.Balance.String())
	for _, p := range bal.Payments {
		assert.True(t, p.BalanceAmount.Equal(bal.Balance))
	}
}

func TestPostgres_IDMalFormadoEsNotFound(t *testing.T) {
	c := openDB(t)
	ctx := context.Background()

	_, err := c.Orders.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.Payments.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.Customers.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, c.Orders.Delete(ctx, "x"), domain.ErrNotFound)

	_, err = c.Orders.Create(ctx, uuid.NewString(), dto.CreateOrderRequest{
		CustomerID: "x", DressType: "Blusa", DeliveryDate: time.Now().AddDate(0, 0, 5), Amount: decimal.NewFromInt(10),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customer_id", verr.Field)

	list, err := c.Payments.List(ctx, dto.PaymentFilterRequest{OrderID: "x"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
