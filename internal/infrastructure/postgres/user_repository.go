package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

const (
	userColumns = `id, username, email, password_hash, full_name, role_id, status, last_login_at, created_at, updated_at`
	roleColumns = `id, name, description, is_admin, permissions, category_ids, product_ids, created_at, updated_at`
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email repetido devuelve ErrEmailAlreadyExists; usuario repetido ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.RoleID, u.Status, u.LastLoginAt, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return userWriteError(err, "insert user")
	}
	return nil
}

func userWriteError(err error, op string) error {
	if isUniqueViolation(err) {
		if strings.Contains(violatedConstraint(err), "email") {
			return domain.ErrEmailAlreadyExists
		}
		return domain.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: el rol no existe", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername búsqueda exacta; los nombres se guardan en minúsculas.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza datos, rol, estado y hash.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET username = $2, email = $3, password_hash = $4, full_name = $5, role_id = $6,
			status = $7, updated_at = $8
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.RoleID, u.Status, u.UpdatedAt)
	if err != nil {
		return userWriteError(err, "update user")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLastLogin marca la fecha del último ingreso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// List usuarios ordenados por nombre de usuario.
func (r *UserRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.User, int, error) {
	var c conditions
	c.search(f.Search, "username", "email", "full_name")
	if f.OnlyActive {
		c.add("status = ?", entity.UserStatusActive)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`+c.where()+` ORDER BY username`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario; con documentos o movimientos a su nombre devuelve ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "users", id)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID, &u.Status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleRepo roles con permisos y alcance en columnas TEXT[].
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (`+roleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		role.ID, role.Name, role.Description, role.IsAdmin, nonNil(role.Permissions),
		nonNil(role.CategoryIDs), nonNil(role.ProductIDs), role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) getOne(ctx context.Context, query, arg string) (*entity.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE roles SET name = $2, description = $3, is_admin = $4, permissions = $5, category_ids = $6,
			product_ids = $7, updated_at = $8
		WHERE id = $1`,
		role.ID, role.Name, role.Description, role.IsAdmin, nonNil(role.Permissions),
		nonNil(role.CategoryIDs), nonNil(role.ProductIDs), role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Role, int, error) {
	var c conditions
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, total, rows.Err()
}

// Delete con usuarios asignados devuelve ErrConflict.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "roles", id)
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.IsAdmin, &role.Permissions,
		&role.CategoryIDs, &role.ProductIDs, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}
