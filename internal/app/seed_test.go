package app_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/app"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

func newContainer(store *memory.Store) *app.Container {
	return app.Build(app.MemoryRepositories(store), app.Options{
		JWT:          auth.JWTConfig{Secret: "seed-secret", ExpMinutes: 60, Issuer: "boutique-test"},
		Registration: auth.RegistrationConfig{DefaultRole: entity.RoleStaff},
		Log:          zerolog.Nop(),
	})
}

func TestSeed_CreaOwnerUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c := newContainer(store)
	owner := app.OwnerAccount{Name: "Dueña", Email: "owner@boutique.test", Password: "Secreto123"}

	require.NoError(t, app.Seed(ctx, c, store.Users(), owner, zerolog.Nop()))
	require.NoError(t, app.Seed(ctx, c, store.Users(), owner, zerolog.Nop()))

	users, err := c.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleOwner, users[0].Role)

	roles, err := c.Roles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	login, err := c.Auth.Login(ctx, dto.LoginRequest{Email: "OWNER@boutique.test", Password: "Secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestSeed_SinEmailSoloRoles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c := newContainer(store)

	require.NoError(t, app.Seed(ctx, c, store.Users(), app.OwnerAccount{}, zerolog.Nop()))

	users, err := c.Users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSeed_PasswordDebilFalla(t *testing.T) {
	store := memory.NewStore()
	c := newContainer(store)
	err := app.Seed(context.Background(), c, store.Users(), app.OwnerAccount{Name: "X", Email: "x@boutique.test", Password: "corta"}, zerolog.Nop())
	assert.Error(t, err)
}
