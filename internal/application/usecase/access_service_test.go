package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

type mapCache struct {
	roles       map[string]*entity.Role
	invalidated []string
}

func newMapCache() *mapCache { return &mapCache{roles: map[string]*entity.Role{}} }

func (c *mapCache) Get(_ context.Context, id string) (*entity.Role, bool) {
	r, ok := c.roles[id]
	return r, ok
}

func (c *mapCache) Set(_ context.Context, r *entity.Role) { c.roles[r.ID] = r }

func (c *mapCache) Invalidate(_ context.Context, id string) {
	delete(c.roles, id)
	c.invalidated = append(c.invalidated, id)
}

type countingMetrics struct{ allowed, denied int }

func (m *countingMetrics) AccessDecision(_, _ string, allowed bool) {
	if allowed {
		m.allowed++
	} else {
		m.denied++
	}
}
func (m *countingMetrics) PaymentRecorded(string)           {}
func (m *countingMetrics) NotificationsCreated(string, int) {}

func TestAccess_OwnerPasaTodo(t *testing.T) {
	f := testutil.New(t)
	svc := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), nil, nil)

	p, err := svc.Principal(context.Background(), f.Owner.ID)
	require.NoError(t, err)
	for _, m := range entity.AllModules {
		for _, v := range entity.AllVerbs {
			assert.True(t, svc.Authorize(p, m, v), "%s/%s", m, v)
		}
	}
	resp := svc.Access(p)
	assert.True(t, resp.IsOwner)
	assert.Len(t, resp.Modules, len(entity.AllModules))
}

func TestAccess_SeniorTailor(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()
	role, err := f.Roles.Create(ctx, dto.CreateRoleRequest{
		DisplayName: "Senior Tailor",
		Modules:     []string{"orders", "customers"},
		Permissions: []string{"read", "update"},
	})
	require.NoError(t, err)
	user := f.User(t, "Marta", "marta@boutique.test", role.ID)

	metrics := &countingMetrics{}
	svc := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), nil, metrics)
	p, err := svc.Principal(ctx, user.ID)
	require.NoError(t, err)

	assert.True(t, svc.Authorize(p, entity.ModuleOrders, entity.VerbUpdate))
	assert.False(t, svc.Authorize(p, entity.ModuleOrders, entity.VerbDelete))
	assert.False(t, svc.Authorize(p, entity.ModulePayments, entity.VerbRead))
	assert.Equal(t, 1, metrics.allowed)
	assert.Equal(t, 2, metrics.denied)

	resp := svc.Access(p)
	assert.False(t, resp.IsOwner)
	assert.Equal(t, "senior_tailor", resp.Role)
	assert.ElementsMatch(t, []string{"read", "update"}, resp.Modules["orders"])
	assert.NotContains(t, resp.Modules, "payments")
}

func TestAccess_UsuarioInactivoNoPasa(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()
	f.Owner.Status = entity.UserStatusInactive
	require.NoError(t, f.Store.Users().Update(ctx, f.Owner))

	svc := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), nil, nil)
	p, err := svc.Principal(ctx, f.Owner.ID)
	require.NoError(t, err)
	assert.False(t, p.Active)
	assert.False(t, svc.Authorize(p, entity.ModuleDashboard, entity.VerbRead))
}

func TestAccess_UsuarioInexistente_Unauthorized(t *testing.T) {
	f := testutil.New(t)
	svc := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), nil, nil)
	_, err := svc.Principal(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAccess_CacheSeInvalidaAlEditarRol(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()
	cache := newMapCache()
	roles := usecase.NewRoleUseCase(f.Store.Roles(), f.Store.Users(), cache)
	svc := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), cache, nil)

	p, err := svc.Principal(ctx, f.Staff.ID)
	require.NoError(t, err)
	assert.False(t, svc.Authorize(p, entity.ModuleReports, entity.VerbRead))
	assert.Contains(t, cache.roles, f.StaffRole.ID)

	mods := []string{"reports"}
	_, err = roles.Update(ctx, f.StaffRole.ID, dto.UpdateRoleRequest{Modules: &mods})
	require.NoError(t, err)
	assert.Equal(t, []string{f.StaffRole.ID}, cache.invalidated)

	p, err = svc.Principal(ctx, f.Staff.ID)
	require.NoError(t, err)
	assert.True(t, svc.Authorize(p, entity.ModuleReports, entity.VerbRead))
	assert.False(t, svc.Authorize(p, entity.ModuleOrders, entity.VerbRead))
}
