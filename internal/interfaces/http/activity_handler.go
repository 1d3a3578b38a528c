package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/activity"
	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

// ActivityHandler consulta y depuración de la bitácora.
type ActivityHandler struct {
	svc *activity.Service
}

// NewActivityHandler construye el handler.
func NewActivityHandler(svc *activity.Service) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func parseActivityQuery(c *fiber.Ctx) (dto.ActivityLogQuery, error) {
	var q dto.ActivityLogQuery
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
// @Summary      Bitácora de actividad
// @Tags         activity-logs
// @Security     Bearer
// @Produce      json
// @Param        user_id   query  string  false  "Usuario"
// @Param        action    query  string  false  "Acción"
// @Param        module    query  string  false  "Módulo"
// @Param        severity  query  string  false  "INFO, WARNING, ERROR o CRITICAL"
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ActivityLogListResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	q, err := parseActivityQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.List(userCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByUser godoc
// @Summary      Bitácora de un usuario
// @Tags         activity-logs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ActivityLogListResponse
// @Router       /api/activity-logs/user/{id} [get]
func (h *ActivityHandler) ByUser(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	q, err := parseActivityQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.ByUser(userCtx(c), id, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de la bitácora
// @Tags         activity-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActivitySummaryResponse
// @Router       /api/activity-logs/summary [get]
func (h *ActivityHandler) Summary(c *fiber.Ctx) error {
	out, err := h.svc.Summary(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearOld godoc
// @Summary      Depurar bitácora
// @Description  Sin days usa la retención configurada.
// @Tags         activity-logs
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días a conservar"
// @Success      200  {object}  dto.ClearLogsResponse
// @Router       /api/activity-logs/old [delete]
func (h *ActivityHandler) ClearOld(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	if days < 0 {
		return respondError(c, &validationError{fields: map[string]string{"days": "min=0"}})
	}
	out, err := h.svc.ClearOld(userCtx(c), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
