package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
)

// reasonCodes códigos estables para razones concretas; el resto usa el de su categoría.
var reasonCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS"},
	{domain.ErrEmailAlreadyExists, "EMAIL_EXISTS"},
	{domain.ErrWeakPassword, "WEAK_PASSWORD"},
	{domain.ErrWrongCurrentPassword, "WRONG_CURRENT_PASSWORD"},
	{domain.ErrSamePassword, "SAME_PASSWORD"},
	{domain.ErrOwnerRoleProtected, "OWNER_ROLE_PROTECTED"},
	{domain.ErrRoleInUse, "ROLE_IN_USE"},
	{domain.ErrOrderHasPayments, "ORDER_HAS_PAYMENTS"},
	{domain.ErrAmountExceedsBalance, "AMOUNT_EXCEEDS_BALANCE"},
	{domain.ErrAmountBelowPaid, "AMOUNT_BELOW_PAID"},
	{domain.ErrCustomerHasOrders, "CUSTOMER_HAS_ORDERS"},
	{domain.ErrUserReferenced, "USER_REFERENCED"},
	{domain.ErrSelfModification, "SELF_MODIFICATION"},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrUserNotFound, "USER_NOT_FOUND"},
}

// errorStatus traduce un error de dominio a status HTTP y respuesta.
// Los errores sin categoría conocida son 500 y no exponen el mensaje interno.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: ve.Message, Field: ve.Field}
	}
	for _, r := range reasonCodes {
		if errors.Is(err, r.err) {
			return statusOf(err), dto.ErrorResponse{Code: r.code, Message: r.err.Error()}
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrAccountDisabled):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrAccountDisabled):
		return fiber.StatusForbidden
	default:
		return fiber.StatusConflict
	}
}

// writeError responde el error traducido. Los 500 se registran con el logger de la petición.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: errores de Fiber conservan su status, el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
