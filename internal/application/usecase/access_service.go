package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/access"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// AccessService carga el principal de cada petición y aplica access.CanAccess.
// Es el único punto que consultan el middleware HTTP y el endpoint de navegación.
type AccessService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	cache    ports.RoleCache
	metrics  ports.Metrics
}

// NewAccessService construye el servicio. cache y metrics pueden ser nil.
func NewAccessService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, cache ports.RoleCache, metrics ports.Metrics) *AccessService {
	if cache == nil {
		cache = ports.NopRoleCache{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &AccessService{userRepo: userRepo, roleRepo: roleRepo, cache: cache, metrics: metrics}
}

// Principal recarga usuario y rol. Un usuario inexistente es ErrUnauthorized; uno inactivo
// se devuelve con Active=false para que el llamador responda AccountDisabled.
func (s *AccessService) Principal(ctx context.Context, userID string) (*access.Principal, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	role, err := s.role(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	return access.NewPrincipal(user, role), nil
}

func (s *AccessService) role(ctx context.Context, roleID string) (*entity.Role, error) {
	if role, ok := s.cache.Get(ctx, roleID); ok {
		return role, nil
	}
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("cargar rol: %w", err)
	}
	if role != nil {
		s.cache.Set(ctx, role)
	}
	return role, nil
}

// Authorize decide y registra la decisión en métricas.
func (s *AccessService) Authorize(p *access.Principal, module entity.Module, verb entity.Verb) bool {
	allowed := access.CanAccess(p, module, verb)
	s.metrics.AccessDecision(string(module), string(verb), allowed)
	return allowed
}

// Access módulos y verbos concedidos, para que la UI arme la navegación.
func (s *AccessService) Access(p *access.Principal) dto.AccessResponse {
	grants := access.Grants(p)
	out := dto.AccessResponse{
		Role:    p.RoleName,
		IsOwner: p.IsOwner(),
		Modules: make(map[string][]string, len(grants)),
	}
	for m, verbs := range grants {
		vs := make([]string, len(verbs))
		for i, v := range verbs {
			vs[i] = string(v)
		}
		out.Modules[string(m)] = vs
	}
	return out
}
