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
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

const (
	customerColumns = `id, name, tax_id, email, phone, address, is_active, created_at, updated_at`
	supplierColumns = `id, name, contact_name, tax_id, email, phone, address, is_active, created_at, updated_at`
)

// CustomerRepo clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.IsActive, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Customer, int, error) {
	var c conditions
	c.search(f.Search, "name", "tax_id", "email")
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+c.where()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		cu, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, cu)
	}
	return list, total, rows.Err()
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "customers", id)
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.ContactName, s.TaxID, s.Email, s.Phone, s.Address, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact_name = $3, tax_id = $4, email = $5, phone = $6, address = $7,
			is_active = $8, updated_at = $9
		WHERE id = $1`,
		s.ID, s.Name, s.ContactName, s.TaxID, s.Email, s.Phone, s.Address, s.IsActive, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Supplier, int, error) {
	var c conditions
	c.search(f.Search, "name", "tax_id", "email")
	if f.OnlyActive {
		c.add("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers`+c.where()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "suppliers", id)
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.TaxID, &s.Email, &s.Phone, &s.Address,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// deleteReferenced borra por id; si otra tabla la referencia devuelve ErrConflict.
func deleteReferenced(ctx context.Context, q Querier, table, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
