package workinghours

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
	"github.com/jhoicas/Warehousing-api/internal/domain/schedule"
)

const cacheKey = "warehousing:working-hours:active"

// Service horario laboral activo: consulta, edición, excepciones y evaluación para el middleware.
type Service struct {
	repo     repository.WorkingHoursRepository
	cache    ports.Cache
	cacheTTL time.Duration
	loc      *time.Location
	activity ports.ActivityRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// Options parámetros opcionales del servicio.
type Options struct {
	Cache    ports.Cache // nil deshabilita la caché
	CacheTTL time.Duration
	Location *time.Location // zona en la que se evalúan las horas; nil = UTC
	Activity ports.ActivityRecorder
	Logger   zerolog.Logger
}

// NewService construye el servicio.
func NewService(repo repository.WorkingHoursRepository, opts Options) *Service {
	s := &Service{
		repo:     repo,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		loc:      opts.Location,
		activity: opts.Activity,
		log:      opts.Logger,
		now:      time.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = time.Minute
	}
	if s.activity == nil {
		s.activity = ports.NopActivity{}
	}
	return s
}

// Get horario activo. Si no existe se crea el horario por defecto.
func (s *Service) Get(ctx context.Context) (*dto.WorkingHoursResponse, error) {
	wh, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		wh, err = s.createDefault(ctx)
		if err != nil {
			return nil, err
		}
	}
	return toResponse(wh), nil
}

// Update reemplaza el horario activo.
func (s *Service) Update(ctx context.Context, in dto.UpdateWorkingHoursRequest) (*dto.WorkingHoursResponse, error) {
	next, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	next.UpdatedAt = now
	var old *dto.WorkingHoursResponse
	if current == nil {
		next.ID = uuid.New().String()
		next.CreatedAt = now
		err = s.repo.Create(ctx, next)
	} else {
		old = toResponse(current)
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.Exceptions = current.Exceptions
		err = s.repo.Update(ctx, next)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := toResponse(next)
	s.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionUpdate,
		Description: "Horario laboral actualizado",
		EntityType:  "WorkingHours",
		EntityID:    next.ID,
		OldValues:   old,
		NewValues:   resp,
		Module:      entity.ModuleSecurity,
	})
	return resp, nil
}

// AddException agrega un feriado o un horario especial para una fecha.
func (s *Service) AddException(ctx context.Context, in dto.WorkingHoursExceptionDTO) (*dto.WorkingHoursExceptionDTO, error) {
	date, err := time.ParseInLocation("2006-01-02", in.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida", domain.ErrInvalidInput)
	}
	ex := &entity.WorkingHoursException{
		ID:           uuid.New().String(),
		Date:         date,
		IsWorkingDay: in.IsWorkingDay,
		Reason:       strings.TrimSpace(in.Reason),
	}
	if (in.StartTime == nil) != (in.EndTime == nil) {
		return nil, fmt.Errorf("%w: indique hora de inicio y fin, o ninguna", domain.ErrInvalidInput)
	}
	if in.StartTime != nil {
		if !in.IsWorkingDay {
			return nil, fmt.Errorf("%w: un día no laboral no lleva horas", domain.ErrInvalidInput)
		}
		start, err := entity.ParseTimeOfDay(*in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		end, err := entity.ParseTimeOfDay(*in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if start == end {
			return nil, fmt.Errorf("%w: la hora de inicio y fin no pueden ser iguales", domain.ErrInvalidInput)
		}
		ex.StartTime, ex.EndTime = &start, &end
	}

	wh, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		if wh, err = s.createDefault(ctx); err != nil {
			return nil, err
		}
	}
	ex.WorkingHoursID = wh.ID
	if err := s.repo.AddException(ctx, ex); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	out := toExceptionDTO(*ex)
	s.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionCreate,
		Description: "Excepción de horario para " + in.Date,
		EntityType:  "WorkingHoursException",
		EntityID:    ex.ID,
		NewValues:   out,
		Module:      entity.ModuleSecurity,
	})
	return &out, nil
}

// DeleteException elimina una excepción.
func (s *Service) DeleteException(ctx context.Context, id string) error {
	if err := s.repo.DeleteException(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionDelete,
		Description: "Excepción de horario eliminada",
		EntityType:  "WorkingHoursException",
		EntityID:    id,
		Module:      entity.ModuleSecurity,
	})
	return nil
}

// ListExceptions excepciones desde hoy.
func (s *Service) ListExceptions(ctx context.Context) ([]dto.WorkingHoursExceptionDTO, error) {
	wh, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return []dto.WorkingHoursExceptionDTO{}, nil
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	list, err := s.repo.ListExceptions(ctx, wh.ID, today)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkingHoursExceptionDTO, 0, len(list))
	for _, ex := range list {
		out = append(out, toExceptionDTO(ex))
	}
	return out, nil
}

// Status evalúa el horario en este momento.
func (s *Service) Status(ctx context.Context) (*dto.WorkingHoursStatusResponse, error) {
	wh, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	out := &dto.WorkingHoursStatusResponse{
		IsWithinWorkingHours: schedule.IsWithin(wh, now),
		CurrentTime:          now,
		Description:          schedule.Describe(wh),
	}
	if !out.IsWithinWorkingHours {
		if next, ok := schedule.NextOpening(wh, now); ok {
			out.NextOpening = &next
		}
	}
	return out, nil
}

// IsWithin indica si t cae dentro del horario activo. Sin horario configurado todo está permitido.
func (s *Service) IsWithin(ctx context.Context, t time.Time) (bool, error) {
	wh, err := s.active(ctx)
	if err != nil {
		return false, err
	}
	return schedule.IsWithin(wh, t.In(s.loc)), nil
}

// active lee el horario desde la caché; si la caché falla se consulta la base directamente.
func (s *Service) active(ctx context.Context) (*entity.WorkingHours, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("caché de horario no disponible")
		case raw != nil:
			var wh entity.WorkingHours
			if err := json.Unmarshal(raw, &wh); err == nil {
				return &wh, nil
			}
		}
	}

	wh, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		// sin horario activo no hay restricción
		wh = &entity.WorkingHours{}
	}
	if s.cache != nil {
		if raw, err := json.Marshal(wh); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("no se pudo guardar el horario en caché")
			}
		}
	}
	return wh, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo invalidar la caché de horario")
	}
}

func (s *Service) createDefault(ctx context.Context) (*entity.WorkingHours, error) {
	wh := schedule.Default()
	now := s.now()
	wh.ID = uuid.New().String()
	wh.CreatedAt = now
	wh.UpdatedAt = now
	if err := s.repo.Create(ctx, wh); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return wh, nil
}

func fromRequest(in dto.UpdateWorkingHoursRequest) (*entity.WorkingHours, error) {
	start, err := entity.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	end, err := entity.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.StartDay < 0 || in.StartDay > 6 || in.EndDay < 0 || in.EndDay > 6 {
		return nil, fmt.Errorf("%w: día de la semana inválido", domain.ErrInvalidInput)
	}
	wh := &entity.WorkingHours{
		Name:          strings.TrimSpace(in.Name),
		IsActive:      in.IsActive,
		StartDay:      time.Weekday(in.StartDay),
		EndDay:        time.Weekday(in.EndDay),
		StartTime:     start,
		EndTime:       end,
		AllowWeekends: in.AllowWeekends,
	}
	for _, d := range in.Days {
		ds, err := entity.ParseTimeOfDay(d.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		de, err := entity.ParseTimeOfDay(d.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		wh.Days = append(wh.Days, entity.WorkingDay{
			DayOfWeek: time.Weekday(d.DayOfWeek),
			StartTime: ds,
			EndTime:   de,
			IsEnabled: d.IsEnabled,
		})
	}
	if err := schedule.Validate(wh); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	wh.Days = schedule.EnsureAllDays(wh)
	return wh, nil
}

func toResponse(wh *entity.WorkingHours) *dto.WorkingHoursResponse {
	out := &dto.WorkingHoursResponse{
		ID:            wh.ID,
		Name:          wh.Name,
		IsActive:      wh.IsActive,
		StartDay:      int(wh.StartDay),
		EndDay:        int(wh.EndDay),
		StartTime:     wh.StartTime.String(),
		EndTime:       wh.EndTime.String(),
		AllowWeekends: wh.AllowWeekends,
		Description:   schedule.Describe(wh),
		Days:          make([]dto.WorkingDayDTO, 0, 7),
		Exceptions:    make([]dto.WorkingHoursExceptionDTO, 0, len(wh.Exceptions)),
		UpdatedAt:     wh.UpdatedAt,
	}
	for _, d := range schedule.EnsureAllDays(wh) {
		out.Days = append(out.Days, dto.WorkingDayDTO{
			DayOfWeek: int(d.DayOfWeek),
			DayName:   schedule.DayName(d.DayOfWeek),
			StartTime: d.StartTime.String(),
			EndTime:   d.EndTime.String(),
			IsEnabled: d.IsEnabled,
		})
	}
	for _, ex := range wh.Exceptions {
		out.Exceptions = append(out.Exceptions, toExceptionDTO(ex))
	}
	return out
}

func toExceptionDTO(ex entity.WorkingHoursException) dto.WorkingHoursExceptionDTO {
	out := dto.WorkingHoursExceptionDTO{
		ID:           ex.ID,
		Date:         ex.Date.Format("2006-01-02"),
		IsWorkingDay: ex.IsWorkingDay,
		Reason:       ex.Reason,
	}
	if ex.StartTime != nil {
		v := ex.StartTime.String()
		out.StartTime = &v
	}
	if ex.EndTime != nil {
		v := ex.EndTime.String()
		out.EndTime = &v
	}
	return out
}
