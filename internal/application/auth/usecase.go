package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationConfig políticas del autorregistro.
type RegistrationConfig struct {
	Allow       bool
	DefaultRole string
}

// AuthUseCase casos de uso del almacén de identidades: login, registro, perfil y contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
	regCfg   RegistrationConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig, regCfg RegistrationConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg, regCfg: regCfg, now: time.Now}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// La contraseña se verifica antes que el estado: solo quien conoce la contraseña
// se entera de que la cuenta está deshabilitada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountDisabled
	}
	now := uc.now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("actualizar último acceso: %w", err)
	}
	user.LastLoginAt = &now
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RoleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Register crea un usuario con el rol indicado: valida, hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe (sin distinguir mayúsculas).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := domain.Required("name", in.Name); err != nil {
		return nil, err
	}
	email, err := domain.NormalizeEmail("email", in.Email)
	if err != nil {
		return nil, err
	}
	phone := ""
	if strings.TrimSpace(in.Phone) != "" {
		if phone, err = domain.NormalizePhone("phone", in.Phone); err != nil {
			return nil, err
		}
	}
	if err := domain.CheckPassword(in.Password); err != nil {
		return nil, err
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewValidationError("role_id", "rol inexistente")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		Address:      strings.TrimSpace(in.Address),
		RoleID:       role.ID,
		RoleName:     role.Name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// SelfRegister alta pública, solo si está habilitada. El rol es siempre el configurado por defecto.
func (uc *AuthUseCase) SelfRegister(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !uc.regCfg.Allow {
		return nil, fmt.Errorf("%w: el autorregistro está deshabilitado", domain.ErrForbidden)
	}
	role, err := uc.roleRepo.GetByName(ctx, uc.regCfg.DefaultRole)
	if err != nil {
		return nil, err
	}
	if role == nil || role.IsOwner() {
		return nil, fmt.Errorf("autorregistro: rol por defecto %q no disponible", uc.regCfg.DefaultRole)
	}
	return uc.Register(ctx, dto.CreateUserRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
		RoleID:   role.ID,
	})
}

// ChangePassword cambia la contraseña del propio usuario.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrWrongCurrentPassword
	}
	if in.NewPassword == in.CurrentPassword {
		return domain.ErrSamePassword
	}
	if err := domain.CheckPassword(in.NewPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile modifica nombre, teléfono y dirección. Email y rol no cambian por esta vía.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := ApplyProfile(user, in.Name, in.Phone, in.Address); err != nil {
		return nil, err
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ApplyProfile valida y aplica los campos de perfil no nil.
func ApplyProfile(user *entity.User, name, phone, address *string) error {
	if name != nil {
		if err := domain.Required("name", *name); err != nil {
			return err
		}
		user.Name = strings.TrimSpace(*name)
	}
	if phone != nil {
		if strings.TrimSpace(*phone) == "" {
			user.Phone = ""
		} else {
			p, err := domain.NormalizePhone("phone", *phone)
			if err != nil {
				return err
			}
			user.Phone = p
		}
	}
	if address != nil {
		user.Address = strings.TrimSpace(*address)
	}
	return nil
}

// IsAuthError informa si err corresponde a un fallo de autenticación esperado.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrAccountDisabled)
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		RoleID:      u.RoleID,
		Role:        u.RoleName,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
