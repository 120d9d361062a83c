package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	p, err := domain.NormalizePhone("phone", "+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", p)

	_, err = domain.NormalizePhone("phone", "12345")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "phone", ve.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeEmail(t *testing.T) {
	e, err := domain.NormalizeEmail("email", "  Ana@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", e)

	for _, bad := range []string{"", "ana", "ana@", "ana@example", "Ana <ana@example.com>"} {
		_, err := domain.NormalizeEmail("email", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, domain.CheckPassword("Secreto123"))

	for _, weak := range []string{"Ab1", "sinmayus123", "SinDigitos", "12345678"} {
		err := domain.CheckPassword(weak)
		assert.ErrorIs(t, err, domain.ErrWeakPassword, weak)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, weak)
	}
}

func TestReasonErrorsMatchTheirKind(t *testing.T) {
	assert.ErrorIs(t, domain.ErrRoleInUse, domain.ErrConflict)
	assert.ErrorIs(t, domain.ErrInvalidCredentials, domain.ErrUnauthorized)
	assert.NotErrorIs(t, domain.ErrRoleInUse, domain.ErrNotFound)
}

func TestCheckScale(t *testing.T) {
	for _, ok := range []string{"100", "99.5", "0.01", "12.3400"} {
		assert.NoError(t, domain.CheckScale("amount", decimal.RequireFromString(ok)), ok)
	}
	err := domain.CheckScale("amount", decimal.RequireFromString("100.005"))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "amount", ve.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
