package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
)

// StoreHandler CRUD de tiendas y bodegas.
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StoreRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.StoreRequest
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
// @Summary      Obtener tienda
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar tiendas
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        search       query  string  false  "Código o nombre"
// @Param        only_active  query  bool    false  "Solo activas"
// @Success      200  {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
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
// @Summary      Actualizar tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la tienda"
// @Param        body  body  dto.StoreRequest  true  "Datos de la tienda"
// @Success      200   {object}  dto.StoreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [put]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StoreRequest
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
// @Summary      Eliminar tienda
// @Tags         stores
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tienda"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [delete]
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
