package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios por el owner.
type UserUseCase struct {
	repo      repository.UserRepository
	roleRepo  repository.RoleRepository
	orderRepo repository.OrderRepository
	auth      *auth.AuthUseCase
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository, orderRepo repository.OrderRepository, authUC *auth.AuthUseCase) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo, orderRepo: orderRepo, auth: authUC}
}

// Create da de alta un usuario con el rol indicado (misma política de contraseña que el registro).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	return uc.auth.Register(ctx, in)
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Update modifica perfil y rol. El owner no puede cambiarse su propio rol.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := auth.ApplyProfile(user, in.Name, in.Phone, in.Address); err != nil {
		return nil, err
	}
	if in.RoleID != nil && *in.RoleID != user.RoleID {
		if actorID == id {
			return nil, domain.ErrSelfModification
		}
		role, err := uc.roleRepo.GetByID(ctx, *in.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.NewValidationError("role_id", "rol inexistente")
		}
		user.RoleID = role.ID
		user.RoleName = role.Name
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ToggleStatus alterna active <-> inactive. Las sesiones del usuario dejan de pasar el
// control de acceso en la siguiente petición.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, actorID, id string) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, domain.ErrSelfModification
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.IsActive() {
		user.Status = entity.UserStatusInactive
	} else {
		user.Status = entity.UserStatusActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete borra un usuario sin referencias en órdenes; si las tiene, debe desactivarse.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfModification
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	refs, err := uc.orderRepo.CountReferencingUser(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrUserReferenced
	}
	return uc.repo.Delete(ctx, id)
}
