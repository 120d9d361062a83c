package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/access"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// roleNameAttempts intentos de alta cuando el nombre derivado choca con otro alta simultáneo.
const roleNameAttempts = 3

// RoleUseCase registro de roles editable por el owner.
type RoleUseCase struct {
	repo     repository.RoleRepository
	userRepo repository.UserRepository
	cache    ports.RoleCache
}

// NewRoleUseCase construye el caso de uso. cache puede ser ports.NopRoleCache.
func NewRoleUseCase(repo repository.RoleRepository, userRepo repository.UserRepository, cache ports.RoleCache) *RoleUseCase {
	if cache == nil {
		cache = ports.NopRoleCache{}
	}
	return &RoleUseCase{repo: repo, userRepo: userRepo, cache: cache}
}

// Create registra un rol propio. El nombre de máquina se deriva de DisplayName y se
// desambigua con sufijo _2, _3... si ya existe.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := domain.Required("display_name", in.DisplayName); err != nil {
		return nil, err
	}
	base := access.DeriveRoleName(in.DisplayName)
	if base == "" {
		return nil, domain.NewValidationError("display_name", "debe contener al menos una letra o dígito")
	}
	modules, err := parseModules(in.Modules)
	if err != nil {
		return nil, err
	}
	verbs, err := parseVerbs(in.Permissions)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		DisplayName: strings.TrimSpace(in.DisplayName),
		Description: strings.TrimSpace(in.Description),
		Modules:     modules,
		Permissions: verbs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Otro alta concurrente puede tomar el mismo sufijo entre List y Create.
	taken := map[string]bool{entity.RoleOwner: true}
	for attempt := 1; ; attempt++ {
		existing, err := uc.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range existing {
			taken[r.Name] = true
		}
		role.Name = access.UniqueRoleName(base, func(n string) bool { return taken[n] })
		err = uc.repo.Create(ctx, role)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt == roleNameAttempts {
			return nil, err
		}
		taken[role.Name] = true
	}
	return ToRoleResponse(role), nil
}

// Update modifica nombre visible, descripción, módulos o permisos. Name es inmutable.
// Los módulos y permisos del owner no se editan: su acceso total no depende de ellos.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if in.DisplayName != nil {
		if err := domain.Required("display_name", *in.DisplayName); err != nil {
			return nil, err
		}
		role.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Description != nil {
		role.Description = strings.TrimSpace(*in.Description)
	}
	if role.IsOwner() && (in.Modules != nil || in.Permissions != nil) {
		return nil, domain.NewValidationError("modules", "el rol owner siempre tiene acceso total")
	}
	if in.Modules != nil {
		if role.Modules, err = parseModules(*in.Modules); err != nil {
			return nil, err
		}
	}
	if in.Permissions != nil {
		if role.Permissions, err = parseVerbs(*in.Permissions); err != nil {
			return nil, err
		}
	}
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, role.ID)
	return ToRoleResponse(role), nil
}

// Delete elimina un rol. El owner nunca se elimina; un rol asignado a usuarios tampoco
// (reasignarlos primero es responsabilidad del llamador).
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	if role.IsOwner() {
		return domain.ErrOwnerRoleProtected
	}
	n, err := uc.userRepo.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrRoleInUse
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, id)
	return nil
}

// GetByID obtiene un rol.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return ToRoleResponse(role), nil
}

// List todos los roles en orden de creación.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, *ToRoleResponse(r))
	}
	return out, nil
}

// EnsureBuiltins crea los roles owner y staff si no existen (idempotente, lo usa seed).
func (uc *RoleUseCase) EnsureBuiltins(ctx context.Context) (owner, staff *entity.Role, err error) {
	owner, err = uc.ensure(ctx, &entity.Role{
		Name:        entity.RoleOwner,
		DisplayName: "Owner",
		Description: "Acceso total",
		Modules:     entity.NewModuleSet(entity.AllModules...),
		Permissions: entity.NewVerbSet(entity.VerbAll),
	})
	if err != nil {
		return nil, nil, err
	}
	staff, err = uc.ensure(ctx, &entity.Role{
		Name:        entity.RoleStaff,
		DisplayName: "Staff",
		Description: "Personal del taller",
		Modules: entity.NewModuleSet(
			entity.ModuleDashboard, entity.ModuleCustomers, entity.ModuleOrders,
			entity.ModulePayments, entity.ModuleInventory,
		),
		Permissions: entity.NewVerbSet(entity.VerbRead, entity.VerbCreate, entity.VerbUpdate),
	})
	if err != nil {
		return nil, nil, err
	}
	return owner, staff, nil
}

func (uc *RoleUseCase) ensure(ctx context.Context, role *entity.Role) (*entity.Role, error) {
	existing, err := uc.repo.GetByName(ctx, role.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	role.ID = uuid.New().String()
	role.CreatedAt = now
	role.UpdatedAt = now
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("crear rol %s: %w", role.Name, err)
	}
	return role, nil
}

// parseModules rechaza módulos desconocidos y los reservados al owner.
func parseModules(raw []string) (entity.ModuleSet, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("modules", "debe incluir al menos un módulo")
	}
	mods := make([]entity.Module, 0, len(raw))
	for _, s := range raw {
		m := entity.Module(strings.ToLower(strings.TrimSpace(s)))
		if !m.Valid() {
			return nil, domain.NewValidationError("modules", fmt.Sprintf("módulo desconocido %q", s))
		}
		if m.OwnerReserved() {
			return nil, domain.NewValidationError("modules", fmt.Sprintf("el módulo %q es exclusivo del owner", s))
		}
		mods = append(mods, m)
	}
	return entity.NewModuleSet(mods...), nil
}

func parseVerbs(raw []string) (entity.VerbSet, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("permissions", "debe incluir al menos un permiso")
	}
	verbs := make([]entity.Verb, 0, len(raw))
	for _, s := range raw {
		v := entity.Verb(strings.ToLower(strings.TrimSpace(s)))
		if !v.Valid() {
			return nil, domain.NewValidationError("permissions", fmt.Sprintf("permiso desconocido %q", s))
		}
		verbs = append(verbs, v)
	}
	return entity.NewVerbSet(verbs...), nil
}

// ToRoleResponse convierte la entidad a DTO.
func ToRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Modules:     r.Modules.Strings(),
		Permissions: r.Permissions.Strings(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
