package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/boutique-api/internal/application/analytics"
)

// ReportsHandler reportes del módulo reports.
type ReportsHandler struct {
	uc *appanalytics.ReportsUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *appanalytics.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Revenue godoc
// @Summary      Ingresos por día de un mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM. Default: mes actual."
// @Success      200  {object}  dto.RevenueReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/revenue [get]
func (h *ReportsHandler) Revenue(c *fiber.Ctx) error {
	report, err := h.uc.Revenue(c.UserContext(), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// PendingPayments godoc
// @Summary      Órdenes con saldo pendiente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingPaymentsReportDTO
// @Router       /api/reports/pending-payments [get]
func (h *ReportsHandler) PendingPayments(c *fiber.Ctx) error {
	report, err := h.uc.PendingPayments(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// Delivery godoc
// @Summary      Entregas del mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM. Default: mes actual."
// @Success      200  {object}  dto.DeliveryReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/delivery [get]
func (h *ReportsHandler) Delivery(c *fiber.Ctx) error {
	report, err := h.uc.Delivery(c.UserContext(), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// StaffWorkload godoc
// @Summary      Carga de trabajo por usuario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StaffWorkloadDTO
// @Router       /api/reports/staff-workload [get]
func (h *ReportsHandler) StaffWorkload(c *fiber.Ctx) error {
	report, err := h.uc.StaffWorkload(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
