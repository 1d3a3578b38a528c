package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
)

// RoleHandler roles y catálogo de permisos (solo administradores).
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "Permisos y alcance"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
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
// @Summary      Obtener rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.RoleListResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
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
// @Summary      Actualizar rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del rol"
// @Param        body  body  dto.RoleRequest  true  "Permisos y alcance"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RoleRequest
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
// @Summary      Eliminar rol
// @Description  Con usuarios asignados responde 409.
// @Tags         roles
// @Security     Bearer
// @Param        id   path  string  true  "ID del rol"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Permissions godoc
// @Summary      Catálogo de permisos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PermissionResponse
// @Router       /api/permissions [get]
func (h *RoleHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(h.uc.Permissions())
}
