package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// DefaultRetentionDays días que se conservan al depurar sin indicar otro valor.
const DefaultRetentionDays = 90

// writeTimeout tope para guardar una entrada aunque la petición ya haya terminado.
const writeTimeout = 5 * time.Second

var _ ports.ActivityRecorder = (*Service)(nil)

// Service bitácora de actividad de usuarios. Record nunca devuelve error: si la
// escritura falla se registra en el log de la aplicación y la operación sigue.
type Service struct {
	repo      repository.ActivityLogRepository
	log       zerolog.Logger
	retention int
	now       func() time.Time
}

// NewService construye el servicio. retentionDays <= 0 usa DefaultRetentionDays.
func NewService(repo repository.ActivityLogRepository, log zerolog.Logger, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{repo: repo, log: log, retention: retentionDays, now: time.Now}
}

// Record guarda la entrada con usuario, IP y agente tomados del Actor del contexto.
func (s *Service) Record(ctx context.Context, e ports.ActivityEntry) {
	actor, _ := ports.ActorFrom(ctx)
	severity := e.Severity
	if severity == "" {
		severity = entity.SeverityInfo
	}
	entry := &entity.UserActivityLog{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      e.Action,
		Description: e.Description,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		OldValues:   s.encode(e.OldValues),
		NewValues:   s.encode(e.NewValues),
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
		Module:      e.Module,
		Severity:    severity,
		CreatedAt:   s.now(),
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.repo.Create(wctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("action", entry.Action).
			Str("module", entry.Module).
			Str("user_id", entry.UserID).
			Msg("no se pudo registrar la actividad")
	}
}

func (s *Service) encode(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Debug().Err(err).Msg("valores de actividad no serializables")
		return ""
	}
	return string(b)
}

// List bitácora filtrada, más reciente primero.
func (s *Service) List(ctx context.Context, q dto.ActivityLogQuery) (*dto.ActivityLogListResponse, error) {
	q.DefaultPage()
	rows, total, err := s.repo.List(ctx, repository.ActivityFilter{
		UserID:   q.UserID,
		Action:   q.Action,
		Module:   q.Module,
		Severity: q.Severity,
		From:     q.From,
		To:       q.To,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ActivityLogListResponse{
		Items: make([]dto.ActivityLogResponse, 0, len(rows)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, r := range rows {
		out.Items = append(out.Items, toResponse(r))
	}
	return out, nil
}

// ByUser actividad de un usuario.
func (s *Service) ByUser(ctx context.Context, userID string, q dto.ActivityLogQuery) (*dto.ActivityLogListResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	q.UserID = userID
	return s.List(ctx, q)
}

// Summary totales de hoy, semana y mes, y conteos por acción, módulo y severidad.
func (s *Service) Summary(ctx context.Context) (*dto.ActivitySummaryResponse, error) {
	sum, err := s.repo.Summary(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &dto.ActivitySummaryResponse{
		Total:      sum.Total,
		Today:      sum.Today,
		ThisWeek:   sum.ThisWeek,
		ThisMonth:  sum.ThisMonth,
		ByAction:   sum.ByAction,
		ByModule:   sum.ByModule,
		BySeverity: sum.BySeverity,
	}, nil
}

// ClearOld borra las entradas con más de daysToKeep días (<= 0 usa la retención configurada).
func (s *Service) ClearOld(ctx context.Context, daysToKeep int) (*dto.ClearLogsResponse, error) {
	if daysToKeep <= 0 {
		daysToKeep = s.retention
	}
	cutoff := s.now().AddDate(0, 0, -daysToKeep)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("bitácora depurada")
	return &dto.ClearLogsResponse{Deleted: n, Cutoff: cutoff}, nil
}

func toResponse(l *entity.UserActivityLog) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Username:    l.Username,
		Action:      l.Action,
		Description: l.Description,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		OldValues:   l.OldValues,
		NewValues:   l.NewValues,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		Module:      l.Module,
		Severity:    l.Severity,
		CreatedAt:   l.CreatedAt,
	}
}
