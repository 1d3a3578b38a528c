package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.RoleRepository         = (*RoleRepo)(nil)
	_ repository.ActivityLogRepository  = (*ActivityLogRepo)(nil)
	_ repository.WorkingHoursRepository = (*WorkingHoursRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ db *DB }

// NewUserRepository construye el repositorio.
func NewUserRepository(db *DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLoginAt = &at
	r.db.s.users[id] = u
	return nil
}

func (r *UserRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.User, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.User
	for _, u := range r.db.s.users {
		if (f.OnlyActive && !u.IsActive()) || !matches(f.Search, u.Username, u.Email, u.FullName) {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return paginate(out, limit, offset), len(out), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.s.users, id)
	return nil
}

// RoleRepo roles en memoria.
type RoleRepo struct{ db *DB }

// NewRoleRepository construye el repositorio.
func NewRoleRepository(db *DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.roles {
		if existing.Name == role.Name {
			return domain.ErrDuplicate
		}
	}
	r.db.s.roles[role.ID] = copyRole(*role)
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	role, ok := r.db.s.roles[id]
	if !ok {
		return nil, nil
	}
	role = copyRole(role)
	return &role, nil
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, role := range r.db.s.roles {
		if role.Name == name {
			role = copyRole(role)
			return &role, nil
		}
	}
	return nil, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.roles[role.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.roles[role.ID] = copyRole(*role)
	return nil
}

func (r *RoleRepo) List(_ context.Context, limit, offset int) ([]*entity.Role, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Role, 0, len(r.db.s.roles))
	for _, role := range r.db.s.roles {
		role = copyRole(role)
		out = append(out, &role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *RoleRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.roles[id]; !ok {
		return domain.ErrNotFound
	}
	for _, u := range r.db.s.users {
		if u.RoleID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.roles, id)
	return nil
}

// ActivityLogRepo bitácora en memoria.
type ActivityLogRepo struct{ db *DB }

// NewActivityLogRepository construye el repositorio.
func NewActivityLogRepository(db *DB) *ActivityLogRepo { return &ActivityLogRepo{db: db} }

func (r *ActivityLogRepo) Create(_ context.Context, l *entity.UserActivityLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.s.activity = append(r.db.s.activity, *l)
	return nil
}

func (r *ActivityLogRepo) List(_ context.Context, f repository.ActivityFilter, limit, offset int) ([]*entity.UserActivityLog, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.UserActivityLog
	for _, l := range r.db.s.activity {
		if (f.UserID != "" && l.UserID != f.UserID) ||
			(f.Action != "" && l.Action != f.Action) ||
			(f.Module != "" && l.Module != f.Module) ||
			(f.Severity != "" && l.Severity != f.Severity) ||
			!inRange(l.CreatedAt, f.From, f.To) {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), len(out), nil
}

func (r *ActivityLogRepo) Summary(_ context.Context, now time.Time) (*entity.ActivitySummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := today.AddDate(0, 0, -int(today.Weekday()))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	s := &entity.ActivitySummary{ByAction: map[string]int{}, ByModule: map[string]int{}, BySeverity: map[string]int{}}
	for _, l := range r.db.s.activity {
		s.Total++
		if !l.CreatedAt.Before(today) {
			s.Today++
		}
		if !l.CreatedAt.Before(week) {
			s.ThisWeek++
		}
		if !l.CreatedAt.Before(month) {
			s.ThisMonth++
		}
		s.ByAction[l.Action]++
		s.ByModule[l.Module]++
		s.BySeverity[l.Severity]++
	}
	return s, nil
}

func (r *ActivityLogRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	before := len(r.db.s.activity)
	r.db.s.activity = slices.DeleteFunc(r.db.s.activity, func(l entity.UserActivityLog) bool {
		return l.CreatedAt.Before(cutoff)
	})
	return int64(before - len(r.db.s.activity)), nil
}

// WorkingHoursRepo horario laboral en memoria.
type WorkingHoursRepo struct{ db *DB }

// NewWorkingHoursRepository construye el repositorio.
func NewWorkingHoursRepository(db *DB) *WorkingHoursRepo { return &WorkingHoursRepo{db: db} }

func (r *WorkingHoursRepo) GetActive(_ context.Context) (*entity.WorkingHours, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var active *entity.WorkingHours
	for _, wh := range r.db.s.workingHours {
		if !wh.IsActive {
			continue
		}
		if active == nil || wh.UpdatedAt.After(active.UpdatedAt) {
			wh := wh
			active = &wh
		}
	}
	if active == nil {
		return nil, nil
	}
	active.Days = slices.Clone(active.Days)
	active.Exceptions = nil
	for _, ex := range r.db.s.exceptions {
		if ex.WorkingHoursID == active.ID {
			active.Exceptions = append(active.Exceptions, ex)
		}
	}
	return active, nil
}

func (r *WorkingHoursRepo) Create(_ context.Context, wh *entity.WorkingHours) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *wh
	c.Days = slices.Clone(wh.Days)
	c.Exceptions = nil
	r.db.s.workingHours[wh.ID] = c
	return nil
}

func (r *WorkingHoursRepo) Update(_ context.Context, wh *entity.WorkingHours) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.workingHours[wh.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *wh
	c.Days = slices.Clone(wh.Days)
	c.Exceptions = nil
	r.db.s.workingHours[wh.ID] = c
	return nil
}

func (r *WorkingHoursRepo) AddException(_ context.Context, ex *entity.WorkingHoursException) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.s.exceptions {
		if e.WorkingHoursID == ex.WorkingHoursID && sameDay(e.Date, ex.Date) {
			return domain.ErrDuplicate
		}
	}
	r.db.s.exceptions = append(r.db.s.exceptions, *ex)
	return nil
}

func (r *WorkingHoursRepo) DeleteException(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	before := len(r.db.s.exceptions)
	r.db.s.exceptions = slices.DeleteFunc(r.db.s.exceptions, func(e entity.WorkingHoursException) bool { return e.ID == id })
	if len(r.db.s.exceptions) == before {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkingHoursRepo) ListExceptions(_ context.Context, workingHoursID string, from time.Time) ([]entity.WorkingHoursException, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entity.WorkingHoursException
	for _, e := range r.db.s.exceptions {
		if e.WorkingHoursID == workingHoursID && !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
