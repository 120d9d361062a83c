package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientas (módulo customers).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear clienta (con medida inicial opcional)
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateCustomerRequest  true  "datos de la clienta"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Listar clientas
// @Tags         customers
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "nombre o teléfono"
// @Param        limit   query  int     false  "máx resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), c.Query("search"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener clienta con historial de medidas
// @Tags         customers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la clienta"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Update godoc
// @Summary      Actualizar datos de contacto
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                     true  "ID de la clienta"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Delete godoc
// @Summary      Eliminar clienta sin órdenes
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID de la clienta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMeasurement godoc
// @Summary      Registrar nueva medida (el historial no se edita)
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                  true  "ID de la clienta"
// @Param        body  body  dto.MeasurementRequest  true  "medidas en pulgadas"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/measurements [post]
func (h *CustomerHandler) AddMeasurement(c *fiber.Ctx) error {
	var in dto.MeasurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.AddMeasurement(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// ListOrders godoc
// @Summary      Órdenes de la clienta
// @Tags         customers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la clienta"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/customers/{id}/orders [get]
func (h *CustomerHandler) ListOrders(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
