package repository

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca sin distinguir mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]*entity.User, error)
	// ListActiveByRoleName usuarios activos de un rol (p. ej. owners para avisos).
	ListActiveByRoleName(ctx context.Context, roleName string) ([]*entity.User, error)
	CountByRole(ctx context.Context, roleID string) (int, error)
	Delete(ctx context.Context, id string) error
}
