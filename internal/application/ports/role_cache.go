package ports

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// RoleCache caché de roles por ID para el control de acceso. Un fallo de la caché nunca
// bloquea la petición: Get devuelve (nil, false) y se consulta el repositorio.
type RoleCache interface {
	Get(ctx context.Context, roleID string) (*entity.Role, bool)
	Set(ctx context.Context, role *entity.Role)
	Invalidate(ctx context.Context, roleID string)
}

// NopRoleCache caché vacía, usada cuando no hay Redis configurado.
type NopRoleCache struct{}

func (NopRoleCache) Get(context.Context, string) (*entity.Role, bool) { return nil, false }
func (NopRoleCache) Set(context.Context, *entity.Role)                {}
func (NopRoleCache) Invalidate(context.Context, string)               {}
