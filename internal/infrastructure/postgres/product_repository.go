package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, category_id, sub_category_id, unit_id, unit, cost, price, reorder_level,
	is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Code, p.Name, p.Description, nullable(p.CategoryID), nullable(p.SubCategoryID), nullable(p.UnitID), p.Unit,
		p.Cost, p.Price, p.ReorderLevel, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. El costo solo cambia vía UpdateCost.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET code = $2, name = $3, description = $4, category_id = $5, sub_category_id = $6,
			unit_id = $7, unit = $8, price = $9, reorder_level = $10, is_active = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, nullable(p.CategoryID), nullable(p.SubCategoryID), nullable(p.UnitID), p.Unit,
		p.Price, p.ReorderLevel, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por la recepción de compras y el stock inicial).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// List lista productos filtrados con paginación, ordenados por código.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var c conditions
	c.search(f.Search, "code", "name")
	c.eq("category_id::text", f.CategoryID)
	c.eq("sub_category_id::text", f.SubCategoryID)
	if f.OnlyActive {
		c.add("is_active")
	}
	c.scope("id::text", "category_id::text", f.CategoryIDs, f.ProductIDs)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+c.where()+` ORDER BY code`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID. Con movimientos o existencias devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, subCategoryID, unitID *string
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &categoryID, &subCategoryID, &unitID, &p.Unit,
		&p.Cost, &p.Price, &p.ReorderLevel, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID, p.SubCategoryID, p.UnitID = deref(categoryID), deref(subCategoryID), deref(unitID)
	return &p, nil
}
