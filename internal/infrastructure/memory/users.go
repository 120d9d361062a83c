package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s  *Store
	tx bool
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.lockWrite(r.tx)()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.st.users[user.ID] = cloneUser(user)
	r.s.st.userOrder = append(r.s.st.userOrder, user.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return r.withRole(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return r.withRole(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	defer r.s.lockWrite(r.tx)()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.st.userOrder))
	for _, id := range r.s.st.userOrder {
		out = append(out, r.withRole(r.s.st.users[id]))
	}
	return out, nil
}

func (r *UserRepo) ListActiveByRoleName(_ context.Context, roleName string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, id := range r.s.st.userOrder {
		u := r.withRole(r.s.st.users[id])
		if u.RoleName == roleName && u.IsActive() {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepo) CountByRole(_ context.Context, roleID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.st.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.users, id)
	r.s.st.userOrder = removeID(r.s.st.userOrder, id)
	return nil
}

// withRole copia el usuario y completa RoleName. Requiere el lock tomado.
func (r *UserRepo) withRole(u *entity.User) *entity.User {
	c := cloneUser(u)
	if role, ok := r.s.st.roles[u.RoleID]; ok {
		c.RoleName = role.Name
	}
	return c
}
