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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, type, status, customer_id, supplier_id, order_date, notes,
	subtotal, discount, total, created_by, completed_at, cancelled_at, created_at, updated_at`

// OrderRepo órdenes de compra y venta con sus líneas sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		o.ID, o.Number, o.Type, o.Status, nullable(o.CustomerID), nullable(o.SupplierID), o.OrderDate, o.Notes,
		o.Subtotal, o.Discount, o.Total, nullable(o.CreatedBy), o.CompletedAt, o.CancelledAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(ctx, o)
}

func (r *OrderRepo) insertItems(ctx context.Context, o *entity.Order) error {
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, store_id, quantity, unit_price, unit_cost, discount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.StoreID, it.Quantity, it.UnitPrice, it.UnitCost, it.Discount)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; así dos cierres concurrentes de la misma orden se serializan.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, store_id, quantity, unit_price, unit_cost, discount
		FROM order_items WHERE order_id = $1 ORDER BY product_id, store_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.StoreID, &it.Quantity,
			&it.UnitPrice, &it.UnitCost, &it.Discount); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// Update reemplaza cabecera, totales y líneas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET customer_id = $2, supplier_id = $3, order_date = $4, notes = $5,
			subtotal = $6, discount = $7, total = $8, updated_at = $9
		WHERE id = $1`,
		o.ID, nullable(o.CustomerID), nullable(o.SupplierID), o.OrderDate, o.Notes,
		o.Subtotal, o.Discount, o.Total, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, o)
}

// UpdateStatus persiste estado y fechas de cierre.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, completed_at = $3, cancelled_at = $4, updated_at = $5
		WHERE id = $1`,
		o.ID, o.Status, o.CompletedAt, o.CancelledAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) UpdateItemCosts(ctx context.Context, o *entity.Order) error {
	for _, it := range o.Items {
		if _, err := r.q.Exec(ctx, `UPDATE order_items SET unit_cost = $3 WHERE id = $1 AND order_id = $2`,
			it.ID, o.ID, it.UnitCost); err != nil {
			return fmt.Errorf("update order item cost: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "orders", id)
}

// List cabeceras sin líneas, más reciente primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	var c conditions
	c.eq("type", f.Type)
	c.eq("status", f.Status)
	c.eq("customer_id::text", f.CustomerID)
	c.eq("supplier_id::text", f.SupplierID)
	c.between("order_date", f.From, f.To)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+c.where()+` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// CountByDate último consecutivo del tipo de orden en el día.
func (r *OrderRepo) CountByDate(ctx context.Context, orderType string, day time.Time) (int, error) {
	return lastSequence(ctx, r.q, "orders", orderType, day)
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var customerID, supplierID, createdBy *string
	if err := row.Scan(&o.ID, &o.Number, &o.Type, &o.Status, &customerID, &supplierID, &o.OrderDate, &o.Notes,
		&o.Subtotal, &o.Discount, &o.Total, &createdBy, &o.CompletedAt, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.CustomerID, o.SupplierID, o.CreatedBy = deref(customerID), deref(supplierID), deref(createdBy)
	return &o, nil
}
