package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/order"
)

// OrderHandler órdenes de compra y venta (protegido).
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden en borrador
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Tipo, contraparte y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
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
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	return h.byID(c, h.uc.Get)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        type         query  string  false  "PURCHASE o SALE"
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	q.From, q.To = from, to
	out, err := h.uc.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar orden
// @Description  Solo en DRAFT o PENDING; el tipo no cambia.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la orden"
// @Param        body  body  dto.OrderRequest  true  "Contraparte y líneas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.OrderRequest
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
// @Summary      Eliminar orden en borrador
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkPending godoc
// @Summary      Pasar orden a PENDING
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pending [post]
func (h *OrderHandler) MarkPending(c *fiber.Ctx) error {
	return h.byID(c, h.uc.MarkPending)
}

// Complete godoc
// @Summary      Completar orden
// @Description  Una compra suma existencias y una venta las descuenta; sin existencia suficiente responde 409.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	return h.byID(c, h.uc.Complete)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Una orden completada revierte sus movimientos.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.byID(c, h.uc.Cancel)
}

func (h *OrderHandler) byID(c *fiber.Ctx, fn func(context.Context, string) (*dto.OrderResponse, error)) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := fn(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
