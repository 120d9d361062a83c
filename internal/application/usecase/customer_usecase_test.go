package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

func newCustomerUseCase(f *testutil.Fixture) *usecase.CustomerUseCase {
	return usecase.NewCustomerUseCase(f.Store.Customers(), f.Store.Orders(), f.Store.Sequences())
}

func TestCustomerCreate_CodigoYMedidaInicial(t *testing.T) {
	f := testutil.New(t)
	uc := newCustomerUseCase(f)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name:  "Lucía Pérez",
		Phone: "+57 300 111 2233",
		Measurement: &dto.MeasurementRequest{
			Bust:  decimal.RequireFromString("34.5"),
			Waist: decimal.NewFromInt(28),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "CUST001", first.CustomerCode)
	assert.Equal(t, "+573001112233", first.Phone)
	require.Len(t, first.Measurements, 1)
	assert.Equal(t, "34.5", first.Measurements[0].Bust.String())

	second, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "3002223344"})
	require.NoError(t, err)
	assert.Equal(t, "CUST002", second.CustomerCode)
}

func TestCustomerCreate_Validaciones(t *testing.T) {
	f := testutil.New(t)
	uc := newCustomerUseCase(f)
	ctx := context.Background()
	var verr *domain.ValidationError

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "123"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "3002223344", Email: "no-es-email"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Ana", Phone: "3002223344",
		Measurement: &dto.MeasurementRequest{Hip: decimal.NewFromInt(-1)},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "measurement.hip", verr.Field)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Ana", Phone: "3002223344",
		Measurement: &dto.MeasurementRequest{Waist: decimal.RequireFromString("30.255")},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "measurement.waist", verr.Field)
}

func TestCustomerAddMeasurement_ConservaHistorial(t *testing.T) {
	f := testutil.New(t)
	uc := newCustomerUseCase(f)
	ctx := context.Background()
	c := f.Customer(t, "Lucía", "3001112233")

	_, err := uc.AddMeasurement(ctx, c.ID, dto.MeasurementRequest{Waist: decimal.NewFromInt(30)})
	require.NoError(t, err)
	got, err := uc.AddMeasurement(ctx, c.ID, dto.MeasurementRequest{Waist: decimal.NewFromInt(29)})
	require.NoError(t, err)
	require.Len(t, got.Measurements, 2)
	assert.Equal(t, "30", got.Measurements[0].Waist.String())
	assert.Equal(t, "29", got.Measurements[1].Waist.String())

	name := "Lucía Gómez"
	updated, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lucía Gómez", updated.Name)
	assert.Len(t, updated.Measurements, 2)
}

func TestCustomerList_BuscaPorNombreOTelefono(t *testing.T) {
	f := testutil.New(t)
	uc := newCustomerUseCase(f)
	ctx := context.Background()
	f.Customer(t, "Lucía", "3001112233")
	f.Customer(t, "Ana", "3109998877")

	byName, err := uc.List(ctx, "lucí", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, "Lucía", byName.Items[0].Name)

	byPhone, err := uc.List(ctx, "999", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byPhone.Items, 1)
	assert.Equal(t, "Ana", byPhone.Items[0].Name)
}

func TestCustomerDelete_ConOrdenes_Conflict(t *testing.T) {
	f := testutil.New(t)
	uc := newCustomerUseCase(f)
	ctx := context.Background()
	c := f.Customer(t, "Lucía", "3001112233")

	ordersUC := orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers())
	_, err := ordersUC.Create(ctx, f.Owner.ID, dto.CreateOrderRequest{
		CustomerID: c.ID, DressType: "Blusa", DeliveryDate: testutil.Day(2030, 1, 10), Amount: testutil.D(200),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrCustomerHasOrders)
	list, err := uc.ListOrders(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty := f.Customer(t, "Ana", "3109998877")
	require.NoError(t, uc.Delete(ctx, empty.ID))
	_, err = uc.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
