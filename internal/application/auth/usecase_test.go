package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/testutil"
	"github.com/jhoicas/boutique-api/pkg/jwt"
)

func TestLogin_OK_EmiteTokenConRol(t *testing.T) {
	f := testutil.New(t)
	resp, err := f.Auth.Login(context.Background(), dto.LoginRequest{Email: "  STAFF@boutique.test ", Password: testutil.Password})
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testutil.JWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, f.Staff.ID, userID)
	assert.Equal(t, entity.RoleStaff, role)
	assert.NotNil(t, resp.User.LastLoginAt)

	stored, err := f.Store.Users().GetByID(context.Background(), f.Staff.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()

	_, err := f.Auth.Login(ctx, dto.LoginRequest{Email: "staff@boutique.test", Password: "Incorrecta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.Auth.Login(ctx, dto.LoginRequest{Email: "nadie@boutique.test", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, auth.IsAuthError(err))
}

func TestLogin_UsuarioInactivo_AccountDisabled(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()
	f.Staff.Status = entity.UserStatusInactive
	require.NoError(t, f.Store.Users().Update(ctx, f.Staff))

	_, err := f.Auth.Login(ctx, dto.LoginRequest{Email: "staff@boutique.test", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	// Con contraseña incorrecta no se revela el estado de la cuenta.
	_, err = f.Auth.Login(ctx, dto.LoginRequest{Email: "staff@boutique.test", Password: "Incorrecta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_Validaciones(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()

	_, err := f.Auth.Register(ctx, dto.CreateUserRequest{Name: "X", Email: "OWNER@boutique.test", Password: testutil.Password, RoleID: f.StaffRole.ID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.Auth.Register(ctx, dto.CreateUserRequest{Name: "X", Email: "x@boutique.test", Password: "corta", RoleID: f.StaffRole.ID})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = f.Auth.Register(ctx, dto.CreateUserRequest{Name: "X", Email: "x@boutique.test", Password: testutil.Password, RoleID: "no-existe"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role_id", verr.Field)

	_, err = f.Auth.Register(ctx, dto.CreateUserRequest{Name: "X", Email: "x@boutique.test", Password: testutil.Password, Phone: "12", RoleID: f.StaffRole.ID})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)
}

func TestSelfRegister_DeshabilitadoPorDefecto(t *testing.T) {
	f := testutil.New(t)
	_, err := f.Auth.SelfRegister(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@boutique.test", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSelfRegister_UsaRolPorDefecto(t *testing.T) {
	f := testutil.New(t)
	uc := auth.NewAuthUseCase(f.Store.Users(), f.Store.Roles(),
		auth.JWTConfig{Secret: testutil.JWTSecret, ExpMinutes: 5},
		auth.RegistrationConfig{Allow: true, DefaultRole: entity.RoleStaff})

	resp, err := uc.SelfRegister(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@boutique.test", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, resp.Role)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
}

func TestChangePassword(t *testing.T) {
	f := testutil.New(t)
	ctx := context.Background()

	err := f.Auth.ChangePassword(ctx, f.Staff.ID, dto.ChangePasswordRequest{CurrentPassword: "Otra12345", NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrWrongCurrentPassword)

	err = f.Auth.ChangePassword(ctx, f.Staff.ID, dto.ChangePasswordRequest{CurrentPassword: testutil.Password, NewPassword: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrSamePassword)

	err = f.Auth.ChangePassword(ctx, f.Staff.ID, dto.ChangePasswordRequest{CurrentPassword: testutil.Password, NewPassword: "sinmayuscula1"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	require.NoError(t, f.Auth.ChangePassword(ctx, f.Staff.ID, dto.ChangePasswordRequest{CurrentPassword: testutil.Password, NewPassword: "Nueva12345"}))
	_, err = f.Auth.Login(ctx, dto.LoginRequest{Email: "staff@boutique.test", Password: "Nueva12345"})
	assert.NoError(t, err)
}

func TestUpdateProfile_NoCambiaEmailNiRol(t *testing.T) {
	f := testutil.New(t)
	name, phone := "Sastre Mayor", "300-123-4567"
	resp, err := f.Auth.UpdateProfile(context.Background(), f.Staff.ID, dto.UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Sastre Mayor", resp.Name)
	assert.Equal(t, "3001234567", resp.Phone)
	assert.Equal(t, "staff@boutique.test", resp.Email)
	assert.Equal(t, f.StaffRole.ID, resp.RoleID)
}
