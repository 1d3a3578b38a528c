package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain"
)

// errorMapping código HTTP y código de negocio por error de dominio.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrNegativeStock, fiber.StatusConflict, "NEGATIVE_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrSameStore, fiber.StatusBadRequest, "SAME_STORE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrOutsideWorkingHours, fiber.StatusForbidden, "OUTSIDE_WORKING_HOURS"},
}

// respondError traduce el error a dto.ErrorResponse. Errores desconocidos → 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Fields: verr.fields})
	}
	if errors.Is(err, errInvalidBody) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
	}
	for _, m := range errorMapping {
		if !errors.Is(err, m.err) {
			continue
		}
		body := dto.ErrorResponse{Code: m.code, Message: err.Error()}
		var stock *domain.InsufficientStockError
		if errors.As(err, &stock) {
			body.Message = domain.ErrInsufficientStock.Error()
			for _, s := range stock.Shortages {
				body.Details = append(body.Details, dto.ShortageDTO{
					ProductID: s.ProductID,
					StoreID:   s.StoreID,
					Requested: s.Requested,
					Available: s.Available,
				})
			}
		}
		return c.Status(m.status).JSON(body)
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "BAD_REQUEST"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return "ERROR"
}

// ErrorHandler manejador central de Fiber: rutas inexistentes, pánicos recuperados y errores no atendidos.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
