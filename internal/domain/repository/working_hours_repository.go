package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// WorkingHoursRepository horario laboral activo, sus días y excepciones.
type WorkingHoursRepository interface {
	// GetActive incluye Days y Exceptions desde hoy. (nil, nil) si no hay horario activo.
	GetActive(ctx context.Context) (*entity.WorkingHours, error)
	Create(ctx context.Context, wh *entity.WorkingHours) error
	// Update reemplaza cabecera y días.
	Update(ctx context.Context, wh *entity.WorkingHours) error
	AddException(ctx context.Context, ex *entity.WorkingHoursException) error
	DeleteException(ctx context.Context, id string) error
	ListExceptions(ctx context.Context, workingHoursID string, from time.Time) ([]entity.WorkingHoursException, error)
}
