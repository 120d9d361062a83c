package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

func newStock(t *testing.T) (*inventory.StockUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return inventory.NewStockUseCase(store, store.Items()), store
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func createItem(t *testing.T, uc *inventory.StockUseCase, name string, qty, min int64) *dto.ItemResponse {
	t.Helper()
	m := dec(min)
	item, err := uc.Create(context.Background(), dto.CreateItemRequest{
		ItemName: name, Category: "Fabric", Quantity: dec(qty), MinStock: &m, Unit: "metros",
	})
	require.NoError(t, err)
	return item
}

func TestCreate_CodigoYMinimoPorDefecto(t *testing.T) {
	uc, _ := newStock(t)
	item, err := uc.Create(context.Background(), dto.CreateItemRequest{
		ItemName: "Seda roja", Category: "Fabric", Quantity: dec(50), Unit: "metros",
	})
	require.NoError(t, err)
	assert.Equal(t, "ITM001", item.ItemCode)
	assert.True(t, item.MinStock.Equal(dec(10)))
	assert.Equal(t, string(entity.StockStatusInStock), item.Status)

	_, err = uc.Create(context.Background(), dto.CreateItemRequest{ItemName: "X", Category: "Plastic", Unit: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatus_Derivado(t *testing.T) {
	uc, _ := newStock(t)
	ctx := context.Background()
	item := createItem(t, uc, "Encaje", 20, 10)

	got, err := uc.SetQuantity(ctx, item.ID, dec(10))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StockStatusLowStock), got.Status)

	got, err = uc.SetQuantity(ctx, item.ID, dec(0))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StockStatusOutOfStock), got.Status)

	got, err = uc.SetQuantity(ctx, item.ID, dec(11))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StockStatusInStock), got.Status)
	assert.NotNil(t, got.LastRestockedAt)

	_, err = uc.SetQuantity(ctx, item.ID, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_NoQuedaNegativo(t *testing.T) {
	uc, _ := newStock(t)
	ctx := context.Background()
	item := createItem(t, uc, "Botones", 5, 10)

	_, err := uc.Adjust(ctx, item.ID, dec(-6))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := uc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(dec(5)))

	got, err = uc.Adjust(ctx, item.ID, dec(-5))
	require.NoError(t, err)
	assert.True(t, got.Quantity.IsZero())

	_, err = uc.Adjust(ctx, item.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(ctx, item.ID, decimal.RequireFromString("0.125"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "delta", verr.Field)

	_, err = uc.Adjust(ctx, "no-existe", dec(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltrosYStockBajo(t *testing.T) {
	uc, _ := newStock(t)
	ctx := context.Background()
	createItem(t, uc, "Seda", 50, 10)
	createItem(t, uc, "Encaje", 3, 10)
	createItem(t, uc, "Cremallera", 0, 5)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Cremallera", low[0].ItemName)

	out, err := uc.List(ctx, dto.ItemFilterRequest{Status: string(entity.StockStatusOutOfStock)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Cremallera", out[0].ItemName)

	search, err := uc.List(ctx, dto.ItemFilterRequest{Search: "sed"})
	require.NoError(t, err)
	require.Len(t, search, 1)

	_, err = uc.List(ctx, dto.ItemFilterRequest{Status: "Sobrante"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_PrioridadPorCobertura(t *testing.T) {
	uc, store := newStock(t)
	ctx := context.Background()
	createItem(t, uc, "Seda", 50, 10)
	createItem(t, uc, "Encaje", 8, 10)
	createItem(t, uc, "Hilo", 0, 4)
	createItem(t, uc, "Botones", 2, 10)

	list, err := inventory.NewReplenishmentUseCase(store.Items()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Hilo", list[0].ItemName)
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec(6)))
	assert.Equal(t, "Botones", list[1].ItemName)
	assert.True(t, list[1].SuggestedOrderQty.Equal(dec(13)))
	assert.Equal(t, "Encaje", list[2].ItemName)
	assert.Equal(t, 3, list[2].Priority)
}

func TestDelete(t *testing.T) {
	uc, _ := newStock(t)
	ctx := context.Background()
	item := createItem(t, uc, "Seda", 50, 10)
	require.NoError(t, uc.Delete(ctx, item.ID))
	assert.ErrorIs(t, uc.Delete(ctx, item.ID), domain.ErrNotFound)
}
