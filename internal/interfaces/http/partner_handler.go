package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

// partnerService contrato común de CustomerUseCase y SupplierUseCase.
type partnerService interface {
	Create(ctx context.Context, in dto.PartnerRequest) (*dto.PartnerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error)
	Update(ctx context.Context, id string, in dto.PartnerRequest) (*dto.PartnerResponse, error)
	List(ctx context.Context, q dto.ListQuery) (*dto.PartnerListResponse, error)
	Delete(ctx context.Context, id string) error
}

// PartnerHandler CRUD de clientes o proveedores según el servicio inyectado.
type PartnerHandler struct {
	svc partnerService
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(svc partnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartnerRequest  true  "Datos del tercero"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
// @Router       /api/suppliers [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.PartnerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.Create(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente o proveedor
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PartnerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
// @Router       /api/suppliers/{id} [get]
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.GetByID(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes o proveedores
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        search       query  string  false  "Nombre, NIT o email"
// @Param        only_active  query  bool    false  "Solo activos"
// @Success      200  {object}  dto.PartnerListResponse
// @Router       /api/customers [get]
// @Router       /api/suppliers [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente o proveedor
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID"
// @Param        body  body  dto.PartnerRequest  true  "Datos del tercero"
// @Success      200   {object}  dto.PartnerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
// @Router       /api/suppliers/{id} [put]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PartnerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.Update(userCtx(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente o proveedor
// @Description  Con órdenes asociadas responde 409.
// @Tags         partners
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
// @Router       /api/suppliers/{id} [delete]
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
