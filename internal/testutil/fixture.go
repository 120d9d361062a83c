// Package testutil arma un entorno en memoria con roles integrados y usuarios listos para
// los tests de casos de uso y de HTTP.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

// Password cumple la política y se usa para todos los usuarios del fixture.
const Password = "Secreto123"

// JWTSecret firma de los tokens emitidos en tests.
const JWTSecret = "test-secret"

// Fixture almacén en memoria con owner y staff creados.
type Fixture struct {
	Store     *memory.Store
	Auth      *auth.AuthUseCase
	Roles     *usecase.RoleUseCase
	OwnerRole *entity.Role
	StaffRole *entity.Role
	Owner     *entity.User
	Staff     *entity.User
}

// New crea el fixture. El autorregistro queda deshabilitado.
func New(t testing.TB) *Fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	roles := usecase.NewRoleUseCase(store.Roles(), store.Users(), nil)
	ownerRole, staffRole, err := roles.EnsureBuiltins(ctx)
	require.NoError(t, err)

	f := &Fixture{
		Store: store,
		Auth: auth.NewAuthUseCase(store.Users(), store.Roles(),
			auth.JWTConfig{Secret: JWTSecret, ExpMinutes: 60, Issuer: "boutique-test"},
			auth.RegistrationConfig{DefaultRole: entity.RoleStaff}),
		Roles:     roles,
		OwnerRole: ownerRole,
		StaffRole: staffRole,
	}
	f.Owner = f.User(t, "Dueña", "owner@boutique.test", ownerRole.ID)
	f.Staff = f.User(t, "Sastre", "staff@boutique.test", staffRole.ID)
	return f
}

// User registra un usuario activo con el rol indicado.
func (f *Fixture) User(t testing.TB, name, email, roleID string) *entity.User {
	t.Helper()
	resp, err := f.Auth.Register(context.Background(), dto.CreateUserRequest{
		Name: name, Email: email, Password: Password, RoleID: roleID,
	})
	require.NoError(t, err)
	u, err := f.Store.Users().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	return u
}

// Customer crea un cliente con el teléfono indicado.
func (f *Fixture) Customer(t testing.TB, name, phone string) *dto.CustomerResponse {
	t.Helper()
	uc := usecase.NewCustomerUseCase(f.Store.Customers(), f.Store.Orders(), f.Store.Sequences())
	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: name, Phone: phone})
	require.NoError(t, err)
	return c
}

// Day fecha a medianoche en UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// D atajo para montos enteros.
func D(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
