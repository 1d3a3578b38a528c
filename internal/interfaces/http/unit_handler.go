package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
)

// UnitHandler CRUD de unidades de medida.
type UnitHandler struct {
	uc *usecase.UnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.UnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UnitRequest  true  "Datos de la unidad"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener unidad
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        search       query  string  false  "Código o nombre"
// @Param        only_active  query  bool    false  "Solo activas"
// @Success      200  {object}  dto.UnitListResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la unidad"
// @Param        body  body  dto.UnitRequest  true  "Datos de la unidad"
// @Success      200   {object}  dto.UnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/{id} [put]
func (h *UnitHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UnitRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(userCtx(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad
// @Tags         units
// @Security     Bearer
// @Param        id   path  string  true  "ID de la unidad"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [delete]
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
