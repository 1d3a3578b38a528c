package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// ActivityLogRepository bitácora de actividad de usuarios.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.UserActivityLog) error
	List(ctx context.Context, f ActivityFilter, limit, offset int) ([]*entity.UserActivityLog, int, error)
	// Summary conteos relativos a now (hoy, semana, mes) y por acción/módulo/severidad.
	Summary(ctx context.Context, now time.Time) (*entity.ActivitySummary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
