package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// RequireAccess devuelve un middleware que exige permiso verb sobre module.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalPrincipal).
//
// Comportamiento:
//   - 401 si no hay principal en el contexto.
//   - 403 FORBIDDEN si access.CanAccess lo niega.
func RequireAccess(module entity.Module, verb entity.Verb, checker accessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "principal no encontrado en el contexto",
			})
		}
		if !checker.Authorize(p, module, verb) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso '" + string(verb) + "' sobre el módulo '" + string(module) + "'",
			})
		}
		return c.Next()
	}
}
