package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los genéricos forman la taxonomía que ve el cliente: NotFound, Forbidden, InvalidInput,
// Conflict, Unauthorized y AccountDisabled. Los específicos envuelven a uno genérico vía Is.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrAccountDisabled = errors.New("la cuenta está deshabilitada")
)

// Razones concretas. Cada una responde true a errors.Is con su categoría genérica.
var (
	ErrUserNotFound         = &reasonError{msg: "usuario no encontrado", kind: ErrNotFound}
	ErrInsufficientStock    = &reasonError{msg: "stock insuficiente", kind: ErrConflict}
	ErrInvalidCredentials   = &reasonError{msg: "credenciales inválidas", kind: ErrUnauthorized}
	ErrEmailAlreadyExists   = &reasonError{msg: "el email ya está registrado", kind: ErrConflict}
	ErrWeakPassword         = &reasonError{msg: "la contraseña no cumple la política (mínimo 8 caracteres, una mayúscula y un dígito)", kind: ErrInvalidInput}
	ErrWrongCurrentPassword = &reasonError{msg: "la contraseña actual no coincide", kind: ErrInvalidInput}
	ErrSamePassword         = &reasonError{msg: "la nueva contraseña debe ser distinta de la actual", kind: ErrInvalidInput}
	ErrOwnerRoleProtected   = &reasonError{msg: "el rol owner no se puede eliminar", kind: ErrConflict}
	ErrRoleInUse            = &reasonError{msg: "el rol está asignado a uno o más usuarios", kind: ErrConflict}
	ErrOrderHasPayments     = &reasonError{msg: "la orden tiene pagos registrados", kind: ErrConflict}
	ErrAmountExceedsBalance = &reasonError{msg: "el monto supera el saldo pendiente de la orden", kind: ErrConflict}
	ErrAmountBelowPaid      = &reasonError{msg: "el total de la orden no puede ser menor a lo ya pagado", kind: ErrConflict}
	ErrCustomerHasOrders    = &reasonError{msg: "el cliente tiene órdenes asociadas", kind: ErrConflict}
	ErrUserReferenced       = &reasonError{msg: "el usuario está referenciado por órdenes; desactívelo en su lugar", kind: ErrConflict}
	ErrSelfModification     = &reasonError{msg: "no puede desactivar ni eliminar su propia cuenta", kind: ErrConflict}
)

type reasonError struct {
	msg  string
	kind error
}

func (e *reasonError) Error() string { return e.msg }

func (e *reasonError) Is(target error) bool { return target == e.kind }

// ValidationError describe un campo inválido. Se considera ErrInvalidInput para errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
