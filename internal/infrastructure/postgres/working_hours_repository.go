package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.WorkingHoursRepository = (*WorkingHoursRepo)(nil)

// Las horas se escriben como texto HH:MM (::time) y se leen con to_char para no depender del tipo TIME de pgx.
const workingHoursColumns = `id, name, is_active, start_day, end_day,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), allow_weekends, created_at, updated_at`

// WorkingHoursRepo horario laboral, días y excepciones sobre PostgreSQL.
type WorkingHoursRepo struct {
	q Querier
}

// NewWorkingHoursRepository construye el adaptador.
func NewWorkingHoursRepository(q Querier) *WorkingHoursRepo {
	return &WorkingHoursRepo{q: q}
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inTx agrupa cabecera y días en una transacción (o savepoint si q ya es una tx).
func (r *WorkingHoursRepo) inTx(ctx context.Context, fn func(q Querier) error) error {
	b, ok := r.q.(txBeginner)
	if !ok {
		return fn(r.q)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetActive horario activo más reciente con días y excepciones desde ayer
// (margen para zonas horarias detrás del servidor).
func (r *WorkingHoursRepo) GetActive(ctx context.Context) (*entity.WorkingHours, error) {
	var wh entity.WorkingHours
	var startDay, endDay int
	var start, end string
	err := r.q.QueryRow(ctx, `
		SELECT `+workingHoursColumns+` FROM working_hours
		WHERE is_active ORDER BY updated_at DESC LIMIT 1`).Scan(
		&wh.ID, &wh.Name, &wh.IsActive, &startDay, &endDay, &start, &end, &wh.AllowWeekends, &wh.CreatedAt, &wh.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	wh.StartDay, wh.EndDay = time.Weekday(startDay), time.Weekday(endDay)
	if wh.StartTime, err = entity.ParseTimeOfDay(start); err != nil {
		return nil, err
	}
	if wh.EndTime, err = entity.ParseTimeOfDay(end); err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, `
		SELECT day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_enabled
		FROM working_days WHERE working_hours_id = $1 ORDER BY day_of_week`, wh.ID)
	if err != nil {
		return nil, fmt.Errorf("list working days: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.WorkingDay
		var dow int
		var ds, de string
		if err := rows.Scan(&dow, &ds, &de, &d.IsEnabled); err != nil {
			return nil, fmt.Errorf("scan working day: %w", err)
		}
		d.DayOfWeek = time.Weekday(dow)
		if d.StartTime, err = entity.ParseTimeOfDay(ds); err != nil {
			return nil, err
		}
		if d.EndTime, err = entity.ParseTimeOfDay(de); err != nil {
			return nil, err
		}
		wh.Days = append(wh.Days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wh.Exceptions, err = r.ListExceptions(ctx, wh.ID, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *WorkingHoursRepo) Create(ctx context.Context, wh *entity.WorkingHours) error {
	return r.inTx(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO working_hours (id, name, is_active, start_day, end_day, start_time, end_time, allow_weekends, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8, $9, $10)`,
			wh.ID, wh.Name, wh.IsActive, int(wh.StartDay), int(wh.EndDay), wh.StartTime.String(), wh.EndTime.String(),
			wh.AllowWeekends, wh.CreatedAt, wh.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert working hours: %w", err)
		}
		return replaceDays(ctx, q, wh)
	})
}

func (r *WorkingHoursRepo) Update(ctx context.Context, wh *entity.WorkingHours) error {
	return r.inTx(ctx, func(q Querier) error {
		cmd, err := q.Exec(ctx, `
			UPDATE working_hours SET name = $2, is_active = $3, start_day = $4, end_day = $5,
				start_time = $6::time, end_time = $7::time, allow_weekends = $8, updated_at = $9
			WHERE id = $1`,
			wh.ID, wh.Name, wh.IsActive, int(wh.StartDay), int(wh.EndDay), wh.StartTime.String(), wh.EndTime.String(),
			wh.AllowWeekends, wh.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update working hours: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceDays(ctx, q, wh)
	})
}

func replaceDays(ctx context.Context, q Querier, wh *entity.WorkingHours) error {
	if _, err := q.Exec(ctx, `DELETE FROM working_days WHERE working_hours_id = $1`, wh.ID); err != nil {
		return fmt.Errorf("delete working days: %w", err)
	}
	for _, d := range wh.Days {
		_, err := q.Exec(ctx, `
			INSERT INTO working_days (working_hours_id, day_of_week, start_time, end_time, is_enabled)
			VALUES ($1, $2, $3::time, $4::time, $5)`,
			wh.ID, int(d.DayOfWeek), d.StartTime.String(), d.EndTime.String(), d.IsEnabled)
		if err != nil {
			return fmt.Errorf("insert working day: %w", err)
		}
	}
	return nil
}

// AddException una fecha repetida devuelve ErrDuplicate.
func (r *WorkingHoursRepo) AddException(ctx context.Context, ex *entity.WorkingHoursException) error {
	var start, end *string
	if ex.StartTime != nil {
		s := ex.StartTime.String()
		start = &s
	}
	if ex.EndTime != nil {
		e := ex.EndTime.String()
		end = &e
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO working_hours_exceptions (id, working_hours_id, date, start_time, end_time, is_working_day, reason)
		VALUES ($1, $2, $3::date, $4::time, $5::time, $6, $7)`,
		ex.ID, ex.WorkingHoursID, ex.Date.Format("2006-01-02"), start, end, ex.IsWorkingDay, ex.Reason)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert working hours exception: %w", err)
	}
	return nil
}

func (r *WorkingHoursRepo) DeleteException(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "working_hours_exceptions", id)
}

// ListExceptions excepciones con fecha >= from, en orden cronológico.
func (r *WorkingHoursRepo) ListExceptions(ctx context.Context, workingHoursID string, from time.Time) ([]entity.WorkingHoursException, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, working_hours_id, to_char(date, 'YYYY-MM-DD'),
			to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_working_day, reason
		FROM working_hours_exceptions
		WHERE working_hours_id = $1 AND date >= $2::date
		ORDER BY date`, workingHoursID, from.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list working hours exceptions: %w", err)
	}
	defer rows.Close()
	var out []entity.WorkingHoursException
	for rows.Next() {
		var ex entity.WorkingHoursException
		var date string
		var start, end *string
		if err := rows.Scan(&ex.ID, &ex.WorkingHoursID, &date, &start, &end, &ex.IsWorkingDay, &ex.Reason); err != nil {
			return nil, fmt.Errorf("scan working hours exception: %w", err)
		}
		if ex.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, err
		}
		if start != nil {
			t, err := entity.ParseTimeOfDay(*start)
			if err != nil {
				return nil, err
			}
			ex.StartTime = &t
		}
		if end != nil {
			t, err := entity.ParseTimeOfDay(*end)
			if err != nil {
				return nil, err
			}
			ex.EndTime = &t
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}
