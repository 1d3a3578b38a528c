package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler existencias, ajustes y reposición (protegido).
type InventoryHandler struct {
	query         *inventory.QueryUseCase
	adjust        *inventory.AdjustmentUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.QueryUseCase, adjust *inventory.AdjustmentUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{query: query, adjust: adjust, replenishment: replenishment}
}

// List godoc
// @Summary      Listar existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id    query  string  false  "Tienda"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	return h.list(c, q)
}

// ByStore godoc
// @Summary      Existencias de una tienda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la tienda"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/by-store/{id} [get]
func (h *InventoryHandler) ByStore(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.InventoryListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	q.StoreID = id
	return h.list(c, q)
}

// ByProduct godoc
// @Summary      Existencias de un producto en todas las tiendas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/by-product/{id} [get]
func (h *InventoryHandler) ByProduct(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.InventoryListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	q.ProductID = id
	return h.list(c, q)
}

func (h *InventoryHandler) list(c *fiber.Ctx, q dto.InventoryListQuery) error {
	out, err := h.query.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  number  false  "Umbral de stock bajo"  default(10)
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	threshold, err := queryDecimal(c, "threshold")
	if err != nil {
		return respondError(c, err)
	}
	var t decimal.Decimal
	if threshold != nil {
		t = *threshold
	}
	out, err := h.query.Summary(userCtx(c), t)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Existencias bajas
// @Description  Sin threshold compara contra el nivel de reorden de cada producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id   query  string  false  "Tienda"
// @Param        threshold  query  number  false  "Umbral"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var q dto.LowStockQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	threshold, err := queryDecimal(c, "threshold")
	if err != nil {
		return respondError(c, err)
	}
	q.Threshold = threshold
	out, err := h.query.LowStock(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

type reconcileQuery struct {
	ProductID string `query:"product_id" validate:"required,uuid"`
	StoreID   string `query:"store_id" validate:"required,uuid"`
}

// Reconcile godoc
// @Summary      Conciliar existencia contra el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "Producto"
// @Param        store_id    query  string  true  "Tienda"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	var q reconcileQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.query.Reconcile(userCtx(c), q.ProductID, q.StoreID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Sugerencias de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Tienda (vacío = todas)"
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID != "" {
		if err := validate.Var(storeID, "uuid"); err != nil {
			return respondError(c, &validationError{fields: map[string]string{"store_id": "uuid"}})
		}
	}
	out, err := h.replenishment.GenerateReplenishmentList(userCtx(c), storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar existencias a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        store_id  query  string  false  "Tienda"
// @Success      200  {file}  binary
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	var q dto.InventoryListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	data, err := h.query.ExportInventory(userCtx(c), q.StoreID)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("inventario.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

// Adjust godoc
// @Summary      Ajustar existencia
// @Description  quantity es el delta con signo. Sin allow_negative una salida que deje saldo negativo responde 409.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "Ajuste"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.adjust.Adjust(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkAdjust godoc
// @Summary      Ajustes en lote
// @Description  Todos los ajustes se aplican o ninguno.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "Ajustes"
// @Success      201   {array}   dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk-adjust [post]
func (h *InventoryHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.adjust.BulkAdjust(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// InitialStock godoc
// @Summary      Registrar saldo inicial
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitialStockRequest  true  "Saldo inicial"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/initial-stock [post]
func (h *InventoryHandler) InitialStock(c *fiber.Ctx) error {
	var in dto.InitialStockRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.adjust.InitialStock(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
