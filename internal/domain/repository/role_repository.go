package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia del registro de roles.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id string) error
	// List en orden de inserción.
	List(ctx context.Context) ([]*entity.Role, error)
}
