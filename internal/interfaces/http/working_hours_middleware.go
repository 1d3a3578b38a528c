package http

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// DefaultSkipPaths rutas que nunca pasan por el control de horario. "/" solo coincide exacto;
// el resto también cubre sus subrutas.
var DefaultSkipPaths = []string{"/api/auth/login", "/api/auth/logout", "/health", "/metrics", "/docs", "/favicon.ico"}

// scheduleChecker lo implementa *workinghours.Service.
type scheduleChecker interface {
	IsWithin(ctx context.Context, t time.Time) (bool, error)
}

// WorkingHoursConfig opciones del control de horario.
type WorkingHoursConfig struct {
	Checker   scheduleChecker
	SkipPaths []string // se suman a DefaultSkipPaths
	Metrics   ports.BusinessMetrics
	Logger    zerolog.Logger
	Now       func() time.Time
}

// WorkingHours rechaza con 403 OUTSIDE_WORKING_HOURS a usuarios sin privilegio fuera del horario.
// Peticiones sin sesión siguen (la autenticación decide después); administradores y quienes tienen
// WORK_OUTSIDE_WORKING_HOURS siempre pasan. Si el horario no se puede consultar, deja pasar.
// Debe ir después de AuthMiddleware para ver los claims.
func WorkingHours(cfg WorkingHoursConfig) fiber.Handler {
	skip := append(slices.Clone(DefaultSkipPaths), cfg.SkipPaths...)
	if cfg.Metrics == nil {
		cfg.Metrics = ports.NopMetrics{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return func(c *fiber.Ctx) error {
		if skipped(c.Path(), skip) {
			return c.Next()
		}
		claims := GetClaims(c)
		if claims == nil || claims.HasPermission(entity.PermWorkOutsideHours) {
			return c.Next()
		}
		ok, err := cfg.Checker.IsWithin(c.UserContext(), cfg.Now())
		if err != nil {
			cfg.Logger.Error().Err(err).Str("path", c.Path()).Msg("no se pudo verificar el horario laboral; se permite el acceso")
			return c.Next()
		}
		if !ok {
			cfg.Metrics.WorkingHoursDenied()
			cfg.Logger.Info().Str("user", claims.Username).Str("path", c.Path()).Msg("acceso rechazado fuera del horario laboral")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "OUTSIDE_WORKING_HOURS",
				Message: "acceso fuera del horario laboral",
			})
		}
		return c.Next()
	}
}

func skipped(path string, skip []string) bool {
	if path == "/" {
		return true
	}
	for _, p := range skip {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
