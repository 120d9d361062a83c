package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/payments"
)

// PaymentHandler abonos contra órdenes (módulo payments).
type PaymentHandler struct {
	uc      *payments.UseCase
	receipt *payments.ReceiptUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.UseCase, receipt *payments.ReceiptUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc, receipt: receipt}
}

// Record godoc
// @Summary      Registrar abono
// @Description  El monto no puede superar el saldo pendiente de la orden.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RecordPaymentRequest  true  "orden, monto y medio"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.Record(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// List godoc
// @Summary      Listar abonos
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        order_id     query  string  false  "orden"
// @Param        customer_id  query  string  false  "clienta"
// @Param        status       query  string  false  "Pending | Partial | Completed"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var in dto.PaymentFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener abono
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del abono"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	payment, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payment)
}

// Update godoc
// @Summary      Corregir abono (recalcula saldos de la orden)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID del abono"
// @Param        body  body  dto.UpdatePaymentRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payment)
}

// Delete godoc
// @Summary      Eliminar abono (recalcula saldos de la orden)
// @Tags         payments
// @Security     Bearer
// @Param        id   path  string  true  "ID del abono"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Comprobante PDF del abono
// @Tags         payments
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID del abono"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// OrderBalance godoc
// @Summary      Saldo de una orden
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/balance [get]
func (h *PaymentHandler) OrderBalance(c *fiber.Ctx) error {
	balance, err := h.uc.OrderBalance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(balance)
}
