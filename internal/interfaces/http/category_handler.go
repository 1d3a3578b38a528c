package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
)

// CategoryHandler CRUD de categorías de producto.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
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
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        search       query  string  false  "Código o nombre"
// @Param        only_active  query  bool    false  "Solo activas"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
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
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CategoryRequest
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
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
