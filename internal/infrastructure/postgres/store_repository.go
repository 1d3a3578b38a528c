package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, code, name, address, phone, is_main_warehouse, is_active, created_at, updated_at`

// StoreRepo tiendas y bodegas sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `INSERT INTO stores (`+storeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Code, s.Name, s.Address, s.Phone, s.IsMainWarehouse, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// Update actualiza los datos de la tienda.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stores SET code = $2, name = $3, address = $4, phone = $5, is_main_warehouse = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Code, s.Name, s.Address, s.Phone, s.IsMainWarehouse, s.IsActive, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tiendas ordenadas por código.
func (r *StoreRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Store, int, error) {
	var c conditions
	c.search(f.Search, "code", "name")
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stores`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores`+c.where()+` ORDER BY code`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina una tienda. Con existencias o documentos asociados devuelve ErrConflict.
func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone, &s.IsMainWarehouse,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
