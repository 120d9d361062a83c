package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// OwnerAccount cuenta owner inicial. Email vacío omite su creación.
type OwnerAccount struct {
	Name     string
	Email    string
	Password string
}

// Seed crea los roles integrados y, si no existe, la cuenta owner inicial. Es idempotente.
func Seed(ctx context.Context, c *Container, users repository.UserRepository, owner OwnerAccount, log zerolog.Logger) error {
	ownerRole, staffRole, err := c.Roles.EnsureBuiltins(ctx)
	if err != nil {
		return fmt.Errorf("roles integrados: %w", err)
	}
	log.Info().Str("owner_role", ownerRole.ID).Str("staff_role", staffRole.ID).Msg("roles integrados listos")

	email := strings.TrimSpace(owner.Email)
	if email == "" {
		log.Warn().Msg("OWNER_EMAIL vacío: no se crea cuenta owner")
		return nil
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("buscar owner: %w", err)
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("cuenta owner ya existe")
		return nil
	}
	created, err := c.Auth.Register(ctx, dto.CreateUserRequest{
		Name:     owner.Name,
		Email:    email,
		Password: owner.Password,
		RoleID:   ownerRole.ID,
	})
	if err != nil {
		return fmt.Errorf("crear owner: %w", err)
	}
	log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("cuenta owner creada")
	return nil
}
