package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/workinghours"
)

// WorkingHoursHandler configuración del horario laboral.
type WorkingHoursHandler struct {
	svc *workinghours.Service
}

// NewWorkingHoursHandler construye el handler.
func NewWorkingHoursHandler(svc *workinghours.Service) *WorkingHoursHandler {
	return &WorkingHoursHandler{svc: svc}
}

// Get godoc
// @Summary      Horario activo
// @Tags         working-hours
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WorkingHoursResponse
// @Router       /api/working-hours [get]
func (h *WorkingHoursHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar horario
// @Tags         working-hours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateWorkingHoursRequest  true  "Horario"
// @Success      200   {object}  dto.WorkingHoursResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/working-hours [put]
func (h *WorkingHoursHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkingHoursRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.Update(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      ¿Estamos dentro del horario?
// @Tags         working-hours
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WorkingHoursStatusResponse
// @Router       /api/working-hours/status [get]
func (h *WorkingHoursHandler) Status(c *fiber.Ctx) error {
	out, err := h.svc.Status(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListExceptions godoc
// @Summary      Excepciones vigentes
// @Tags         working-hours
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkingHoursExceptionDTO
// @Router       /api/working-hours/exceptions [get]
func (h *WorkingHoursHandler) ListExceptions(c *fiber.Ctx) error {
	out, err := h.svc.ListExceptions(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddException godoc
// @Summary      Agregar excepción por fecha
// @Tags         working-hours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WorkingHoursExceptionDTO  true  "Excepción"
// @Success      201   {object}  dto.WorkingHoursExceptionDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/working-hours/exceptions [post]
func (h *WorkingHoursHandler) AddException(c *fiber.Ctx) error {
	var in dto.WorkingHoursExceptionDTO
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.AddException(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteException godoc
// @Summary      Eliminar excepción
// @Tags         working-hours
// @Security     Bearer
// @Param        id   path  string  true  "ID de la excepción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/working-hours/exceptions/{id} [delete]
func (h *WorkingHoursHandler) DeleteException(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.DeleteException(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
