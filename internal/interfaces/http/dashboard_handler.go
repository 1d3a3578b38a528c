package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Warehousing-api/internal/application/analytics"
	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview godoc
// @Summary      Resumen general del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardOverviewDTO
// @Router       /api/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecentTransactions godoc
// @Summary      Movimientos recientes del libro
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        count  query  int  false  "Cantidad"  default(10)
// @Success      200  {array}  dto.RecentTransactionDTO
// @Router       /api/dashboard/recent-transactions [get]
func (h *DashboardHandler) RecentTransactions(c *fiber.Ctx) error {
	var q dto.DashboardCountQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RecentTransactions(userCtx(c), q.Count)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con mayor existencia
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        count  query  int  false  "Cantidad"  default(10)
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	var q dto.DashboardCountQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.TopProducts(userCtx(c), q.Count)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StorePerformance godoc
// @Summary      Existencias por tienda
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StorePerformanceDTO
// @Router       /api/dashboard/store-performance [get]
func (h *DashboardHandler) StorePerformance(c *fiber.Ctx) error {
	out, err := h.uc.StorePerformance(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlyTransactions godoc
// @Summary      Movimientos por mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses"  default(6)
// @Success      200  {array}  dto.MonthlyTransactionsDTO
// @Router       /api/dashboard/monthly-transactions [get]
func (h *DashboardHandler) MonthlyTransactions(c *fiber.Ctx) error {
	var q dto.DashboardMonthsQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.MonthlyTransactions(userCtx(c), q.Months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo y agotado
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DashboardAlertDTO
// @Router       /api/dashboard/alerts [get]
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
