package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

const activityColumns = `id, user_id, username, action, description, entity_type, entity_id,
	old_values, new_values, ip_address, user_agent, module, severity, created_at`

// ActivityLogRepo bitácora de actividad sobre PostgreSQL. Valores anteriores y nuevos en JSONB.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.UserActivityLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_activity_logs (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		l.ID, nullable(l.UserID), l.Username, l.Action, l.Description, l.EntityType, l.EntityID,
		nullable(l.OldValues), nullable(l.NewValues), l.IPAddress, l.UserAgent, l.Module, l.Severity, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityFilter, limit, offset int) ([]*entity.UserActivityLog, int, error) {
	var c conditions
	c.eq("user_id::text", f.UserID)
	c.eq("action", f.Action)
	c.eq("module", f.Module)
	c.eq("severity", f.Severity)
	c.between("created_at", f.From, f.To)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM user_activity_logs`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+activityColumns+` FROM user_activity_logs`+c.where()+
		` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserActivityLog
	for rows.Next() {
		var l entity.UserActivityLog
		var userID, oldValues, newValues *string
		if err := rows.Scan(&l.ID, &userID, &l.Username, &l.Action, &l.Description, &l.EntityType, &l.EntityID,
			&oldValues, &newValues, &l.IPAddress, &l.UserAgent, &l.Module, &l.Severity, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		l.UserID, l.OldValues, l.NewValues = deref(userID), deref(oldValues), deref(newValues)
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Summary la semana empieza el domingo.
func (r *ActivityLogRepo) Summary(ctx context.Context, now time.Time) (*entity.ActivitySummary, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := today.AddDate(0, 0, -int(today.Weekday()))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	s := &entity.ActivitySummary{}
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE created_at >= $1),
			count(*) FILTER (WHERE created_at >= $2),
			count(*) FILTER (WHERE created_at >= $3)
		FROM user_activity_logs`, today, week, month).Scan(&s.Total, &s.Today, &s.ThisWeek, &s.ThisMonth)
	if err != nil {
		return nil, fmt.Errorf("activity summary: %w", err)
	}
	if s.ByAction, err = r.countBy(ctx, "action"); err != nil {
		return nil, err
	}
	if s.ByModule, err = r.countBy(ctx, "module"); err != nil {
		return nil, err
	}
	if s.BySeverity, err = r.countBy(ctx, "severity"); err != nil {
		return nil, err
	}
	return s, nil
}

// countBy column es una constante interna, nunca entrada del usuario.
func (r *ActivityLogRepo) countBy(ctx context.Context, column string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT `+column+`, count(*) FROM user_activity_logs GROUP BY `+column)
	if err != nil {
		return nil, fmt.Errorf("activity count by %s: %w", column, err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

func (r *ActivityLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM user_activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old activity logs: %w", err)
	}
	return cmd.RowsAffected(), nil
}
