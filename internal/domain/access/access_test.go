package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/access"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func activeUser() *entity.User {
	return &entity.User{ID: "u1", Email: "a@b.com", Status: entity.UserStatusActive}
}

func seniorTailor() *entity.Role {
	return &entity.Role{
		Name:        "senior_tailor",
		Modules:     entity.NewModuleSet(entity.ModuleOrders),
		Permissions: entity.NewVerbSet(entity.VerbRead, entity.VerbUpdate),
	}
}

// El owner pasa para todo par (módulo, verbo), incluso con conjuntos guardados vacíos.
func TestCanAccess_OwnerBypass(t *testing.T) {
	owner := &entity.Role{Name: entity.RoleOwner, Modules: entity.NewModuleSet(), Permissions: entity.NewVerbSet()}
	p := access.NewPrincipal(activeUser(), owner)

	for _, m := range entity.AllModules {
		for _, v := range entity.AllVerbs {
			assert.True(t, access.CanAccess(p, m, v), "owner debe acceder a %s/%s", m, v)
		}
	}
	assert.True(t, access.CanAccess(p, entity.Module("no-listado"), entity.VerbDelete))
	assert.True(t, p.IsOwner())
}

func TestCanAccess_CustomRole(t *testing.T) {
	p := access.NewPrincipal(activeUser(), seniorTailor())

	assert.True(t, access.CanAccess(p, entity.ModuleOrders, entity.VerbRead))
	assert.True(t, access.CanAccess(p, entity.ModuleOrders, entity.VerbUpdate))
	assert.False(t, access.CanAccess(p, entity.ModuleOrders, entity.VerbDelete))
	assert.False(t, access.CanAccess(p, entity.ModulePayments, entity.VerbRead))
	assert.False(t, p.IsOwner())
}

func TestCanAccess_AllVerbGrantsEveryVerbOnListedModules(t *testing.T) {
	role := &entity.Role{
		Name:        "cajera",
		Modules:     entity.NewModuleSet(entity.ModulePayments),
		Permissions: entity.NewVerbSet(entity.VerbAll),
	}
	p := access.NewPrincipal(activeUser(), role)

	assert.True(t, access.CanAccess(p, entity.ModulePayments, entity.VerbDelete))
	assert.False(t, access.CanAccess(p, entity.ModuleOrders, entity.VerbRead))
}

func TestCanAccess_InactiveUserNeverPasses(t *testing.T) {
	u := activeUser()
	u.Status = entity.UserStatusInactive

	owner := &entity.Role{Name: entity.RoleOwner}
	assert.False(t, access.CanAccess(access.NewPrincipal(u, owner), entity.ModuleOrders, entity.VerbRead))
	assert.False(t, access.CanAccess(access.NewPrincipal(u, seniorTailor()), entity.ModuleOrders, entity.VerbRead))
}

func TestCanAccess_NilPrincipalOrRole(t *testing.T) {
	assert.False(t, access.CanAccess(nil, entity.ModuleOrders, entity.VerbRead))
	assert.False(t, access.CanAccess(access.NewPrincipal(activeUser(), nil), entity.ModuleOrders, entity.VerbRead))
}

func TestGrants_MatchesCanAccess(t *testing.T) {
	p := access.NewPrincipal(activeUser(), seniorTailor())
	grants := access.Grants(p)

	assert.Equal(t, []entity.Verb{entity.VerbRead, entity.VerbUpdate}, grants[entity.ModuleOrders])
	_, ok := grants[entity.ModulePayments]
	assert.False(t, ok, "módulos sin verbos no aparecen")
}
