package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/boutique-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  El owner recibe el resumen del negocio (órdenes, ingresos del mes, pagos pendientes,
//
//	clientas, stock bajo). El resto de roles recibe sus órdenes asignadas, pruebas de hoy y
//	entregas de las próximas 24 horas.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OwnerDashboardDTO
// @Success      200  {object}  dto.StaffDashboardDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	if GetPrincipal(c).IsOwner() {
		summary, err := h.uc.OwnerSummary(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(summary)
	}
	summary, err := h.uc.StaffSummary(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
