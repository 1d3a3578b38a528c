package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, code, name, description, is_active, created_at, updated_at`

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Code, c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE categories SET code = $2, name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Description, c.IsActive, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Category, int, error) {
	var c conditions
	c.search(f.Search, "code", "name")
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories`+c.where()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, cat)
	}
	return list, total, rows.Err()
}

// Delete con productos asociados devuelve ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
