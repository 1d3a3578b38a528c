package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.UnitRepository        = (*UnitRepo)(nil)
	_ repository.SubCategoryRepository = (*SubCategoryRepo)(nil)
)

const (
	unitColumns        = `id, code, name, description, is_active, created_at, updated_at`
	subCategoryColumns = `id, category_id, code, name, description, is_active, created_at, updated_at`
)

// UnitRepo unidades de medida sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `INSERT INTO units (`+unitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Code, u.Name, u.Description, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id).
		Scan(&u.ID, &u.Code, &u.Name, &u.Description, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE units SET code = $2, name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1`,
		u.ID, u.Code, u.Name, u.Description, u.IsActive, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Unit, int, error) {
	var c conditions
	c.search(f.Search, "code", "name")
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM units`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count units: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+unitColumns+` FROM units`+c.where()+` ORDER BY code`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list units: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Unit, error) {
		var u entity.Unit
		err := row.Scan(&u.ID, &u.Code, &u.Name, &u.Description, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		return &u, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan unit: %w", err)
	}
	return list, total, nil
}

// Delete con productos asociados devuelve ErrConflict.
func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "units", id)
}

// SubCategoryRepo subcategorías sobre PostgreSQL.
type SubCategoryRepo struct {
	q Querier
}

func NewSubCategoryRepository(q Querier) *SubCategoryRepo {
	return &SubCategoryRepo{q: q}
}

func (r *SubCategoryRepo) Create(ctx context.Context, s *entity.SubCategory) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sub_categories (`+subCategoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CategoryID, s.Code, s.Name, s.Description, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, s.CategoryID)
		}
		return fmt.Errorf("insert sub category: %w", err)
	}
	return nil
}

func (r *SubCategoryRepo) GetByID(ctx context.Context, id string) (*entity.SubCategory, error) {
	s, err := scanSubCategory(r.q.QueryRow(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sub category: %w", err)
	}
	return s, nil
}

func (r *SubCategoryRepo) Update(ctx context.Context, s *entity.SubCategory) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sub_categories SET category_id = $2, code = $3, name = $4, description = $5, is_active = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.CategoryID, s.Code, s.Name, s.Description, s.IsActive, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update sub category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubCategoryRepo) List(ctx context.Context, f repository.SubCategoryFilter, limit, offset int) ([]*entity.SubCategory, int, error) {
	var c conditions
	c.search(f.Search, "code", "name")
	c.eq("category_id::text", f.CategoryID)
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sub_categories`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sub categories: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories`+c.where()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sub categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubCategory
	for rows.Next() {
		s, err := scanSubCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sub category: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete con productos asociados devuelve ErrConflict.
func (r *SubCategoryRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "sub_categories", id)
}

func scanSubCategory(row pgx.Row) (*entity.SubCategory, error) {
	var s entity.SubCategory
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Code, &s.Name, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
