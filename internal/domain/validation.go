package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// NormalizePhone quita espacios y guiones y valida el formato (+ opcional, 10 a 15 dígitos).
func NormalizePhone(field, phone string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(p) {
		return "", NewValidationError(field, "teléfono inválido (10 a 15 dígitos, + opcional)")
	}
	return p, nil
}

// NormalizeEmail recorta, pasa a minúsculas y valida el formato.
func NormalizeEmail(field, email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e || !strings.Contains(e[strings.LastIndex(e, "@")+1:], ".") {
		return "", NewValidationError(field, "email inválido")
	}
	return e, nil
}

// CheckPassword política única en registro, alta por owner y cambio de contraseña:
// mínimo 8 caracteres, al menos una mayúscula y al menos un dígito.
func CheckPassword(pw string) error {
	if len([]rune(pw)) < 8 {
		return ErrWeakPassword
	}
	var upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// Required devuelve un ValidationError si s está vacío tras recortar.
func Required(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return NewValidationError(field, "es obligatorio")
	}
	return nil
}

// MaxDecimals es la escala de las columnas NUMERIC de montos, cantidades y medidas.
const MaxDecimals = 2

// CheckScale rechaza valores con más de MaxDecimals decimales.
func CheckScale(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxDecimals)) {
		return NewValidationError(field, "máximo 2 decimales")
	}
	return nil
}
