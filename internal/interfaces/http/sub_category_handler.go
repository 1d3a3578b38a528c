package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
)

// SubCategoryHandler CRUD de subcategorías de producto.
type SubCategoryHandler struct {
	uc *usecase.SubCategoryUseCase
}

// NewSubCategoryHandler construye el handler.
func NewSubCategoryHandler(uc *usecase.SubCategoryUseCase) *SubCategoryHandler {
	return &SubCategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear subcategoría
// @Tags         sub-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubCategoryRequest  true  "Datos de la subcategoría"
// @Success      201   {object}  dto.SubCategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sub-categories [post]
func (h *SubCategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.SubCategoryRequest
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
// @Summary      Obtener subcategoría
// @Tags         sub-categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la subcategoría"
// @Success      200  {object}  dto.SubCategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sub-categories/{id} [get]
func (h *SubCategoryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar subcategorías
// @Tags         sub-categories
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        search       query  string  false  "Código o nombre"
// @Param        only_active  query  bool    false  "Solo activas"
// @Param        category_id  query  string  false  "Categoría"
// @Success      200  {object}  dto.SubCategoryListResponse
// @Router       /api/sub-categories [get]
func (h *SubCategoryHandler) List(c *fiber.Ctx) error {
	var q dto.SubCategoryListQuery
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
// @Summary      Actualizar subcategoría
// @Tags         sub-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la subcategoría"
// @Param        body  body  dto.SubCategoryRequest  true  "Datos de la subcategoría"
// @Success      200   {object}  dto.SubCategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sub-categories/{id} [put]
func (h *SubCategoryHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SubCategoryRequest
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
// @Summary      Eliminar subcategoría
// @Tags         sub-categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la subcategoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sub-categories/{id} [delete]
func (h *SubCategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ByCategory godoc
// @Summary      Subcategorías de una categoría
// @Tags         sub-categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SubCategoryListResponse
// @Router       /api/categories/{id}/sub-categories [get]
func (h *SubCategoryHandler) ByCategory(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.SubCategoryListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	q.CategoryID = id
	out, err := h.uc.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
