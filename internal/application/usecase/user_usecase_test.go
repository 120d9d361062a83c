package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

func newUserUseCase(f *testutil.Fixture) *usecase.UserUseCase {
	return usecase.NewUserUseCase(f.Store.Users(), f.Store.Roles(), f.Store.Orders(), f.Auth)
}

func TestUserToggleStatus(t *testing.T) {
	f := testutil.New(t)
	uc := newUserUseCase(f)
	ctx := context.Background()

	resp, err := uc.ToggleStatus(ctx, f.Owner.ID, f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, resp.Status)

	_, err = f.Auth.Login(ctx, dto.LoginRequest{Email: "staff@boutique.test", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	resp, err = uc.ToggleStatus(ctx, f.Owner.ID, f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
}

func TestUser_OwnerNoSeModificaASiMismo(t *testing.T) {
	f := testutil.New(t)
	uc := newUserUseCase(f)
	ctx := context.Background()

	_, err := uc.ToggleStatus(ctx, f.Owner.ID, f.Owner.ID)
	assert.ErrorIs(t, err, domain.ErrSelfModification)

	assert.ErrorIs(t, uc.Delete(ctx, f.Owner.ID, f.Owner.ID), domain.ErrSelfModification)

	roleID := f.StaffRole.ID
	_, err = uc.Update(ctx, f.Owner.ID, f.Owner.ID, dto.UpdateUserRequest{RoleID: &roleID})
	assert.ErrorIs(t, err, domain.ErrSelfModification)
}

func TestUserUpdate_CambiaRol(t *testing.T) {
	f := testutil.New(t)
	uc := newUserUseCase(f)
	roleID := f.OwnerRole.ID

	resp, err := uc.Update(context.Background(), f.Owner.ID, f.Staff.ID, dto.UpdateUserRequest{RoleID: &roleID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, resp.Role)

	missing := "no-existe"
	_, err = uc.Update(context.Background(), f.Owner.ID, f.Staff.ID, dto.UpdateUserRequest{RoleID: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete_ReferenciadoPorOrden(t *testing.T) {
	f := testutil.New(t)
	uc := newUserUseCase(f)
	ctx := context.Background()
	customer := f.Customer(t, "Lucía", "3001112233")

	ordersUC := orders.NewUseCase(f.Store, f.Store.Orders(), f.Store.Customers())
	_, err := ordersUC.Create(ctx, f.Owner.ID, dto.CreateOrderRequest{
		CustomerID:   customer.ID,
		DressType:    "Vestido de novia",
		DeliveryDate: testutil.Day(2030, 5, 20),
		AssignedTo:   f.Staff.ID,
		Amount:       testutil.D(1000),
	})
	require.NoError(t, err)

	err = uc.Delete(ctx, f.Owner.ID, f.Staff.ID)
	assert.ErrorIs(t, err, domain.ErrUserReferenced)

	other := f.User(t, "Temporal", "temp@boutique.test", f.StaffRole.ID)
	require.NoError(t, uc.Delete(ctx, f.Owner.ID, other.ID))
	_, err = uc.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserList(t *testing.T) {
	f := testutil.New(t)
	list, err := newUserUseCase(f).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, u := range list {
		assert.NotEmpty(t, u.Role)
	}
}
