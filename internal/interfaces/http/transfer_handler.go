package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/transfer"
)

// TransferHandler traslados entre tiendas (protegido).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado en borrador
// @Tags         store-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Tiendas y líneas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/store-transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
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
// @Summary      Obtener traslado
// @Tags         store-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar traslados
// @Tags         store-transfers
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "DRAFT, COMPLETED o CANCELLED"
// @Param        from_store_id  query  string  false  "Tienda origen"
// @Param        to_store_id    query  string  false  "Tienda destino"
// @Param        from           query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/store-transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var q dto.TransferListQuery
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
// @Summary      Editar traslado en borrador
// @Tags         store-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del traslado"
// @Param        body  body  dto.TransferRequest  true  "Tiendas y líneas"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id} [put]
func (h *TransferHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TransferRequest
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
// @Summary      Eliminar traslado en borrador
// @Tags         store-transfers
// @Security     Bearer
// @Param        id   path  string  true  "ID del traslado"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(userCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Completar traslado
// @Description  Descuenta del origen y suma al destino en una sola transacción. Sin existencia suficiente responde 409 con el detalle.
// @Tags         store-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel godoc
// @Summary      Cancelar traslado
// @Tags         store-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *TransferHandler) transition(c *fiber.Ctx, fn func(context.Context, string) (*dto.TransferResponse, error)) error {
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

// Transactions godoc
// @Summary      Movimientos generados por el traslado
// @Tags         store-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/store-transfers/{id}/transactions [get]
func (h *TransferHandler) Transactions(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Transactions(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante PDF del traslado
// @Tags         store-transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store-transfers/{id}/pdf [get]
func (h *TransferHandler) PDF(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.uc.Slip(userCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="traslado-`+id+`.pdf"`)
	return c.Send(data)
}
