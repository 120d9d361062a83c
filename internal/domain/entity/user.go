package entity

import "time"

// Estados de cuenta de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa una persona que opera el sistema (owner o staff).
// RoleID referencia exactamente un Role; RoleName se llena al leer (join) y no se persiste.
type User struct {
	ID           string
	Name         string
	Email        string // único, se guarda en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	Address      string
	RoleID       string
	RoleName     string
	Status       string // active, inactive
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive informa si la cuenta puede autenticarse y pasar el control de acceso.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
