package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación en memoria de RoleRepository.
type RoleRepo struct {
	s  *Store
	tx bool
}

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	defer r.s.lockWrite(r.tx)()
	for _, existing := range r.s.st.roles {
		if existing.Name == role.Name {
			return fmt.Errorf("%w: el rol %q ya existe", domain.ErrConflict, role.Name)
		}
	}
	r.s.st.roles[role.ID] = cloneRole(role)
	r.s.st.roleOrder = append(r.s.st.roleOrder, role.ID)
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.st.roles[id]
	if !ok {
		return nil, nil
	}
	return cloneRole(role), nil
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.st.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.roles[role.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *RoleRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.roles, id)
	r.s.st.roleOrder = removeID(r.s.st.roleOrder, id)
	return nil
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Role, 0, len(r.s.st.roleOrder))
	for _, id := range r.s.st.roleOrder {
		out = append(out, cloneRole(r.s.st.roles[id]))
	}
	return out, nil
}
