package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
)

// TransactionHandler consulta y exportación del libro de inventario.
type TransactionHandler struct {
	query *inventory.QueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(query *inventory.QueryUseCase) *TransactionHandler {
	return &TransactionHandler{query: query}
}

func parseTransactionQuery(c *fiber.Ctx) (dto.TransactionListQuery, error) {
	var q dto.TransactionListQuery
	if err := parseQuery(c, &q); err != nil {
		return q, err
	}
	from, to, err := dateRange(c)
	if err != nil {
		return q, err
	}
	q.From, q.To = from, to
	return q, nil
}

// List godoc
// @Summary      Libro de inventario
// @Tags         inventory-transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        store_id     query  string  false  "Tienda"
// @Param        type         query  string  false  "Tipo de transacción"
// @Param        order_id     query  string  false  "Orden"
// @Param        transfer_id  query  string  false  "Traslado"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/inventory-transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	q, err := parseTransactionQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.query.Transactions(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar libro de inventario a Excel
// @Tags         inventory-transactions
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/inventory-transactions/export [get]
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	q, err := parseTransactionQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.query.ExportTransactions(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("movimientos.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}
