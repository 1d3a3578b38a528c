package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, product_id, store_id, type, quantity_changed, quantity_before, quantity_after,
	unit_cost, reason, order_id, order_item_id, transfer_id, created_by, created_at`

// TransactionRepo libro de inventario sobre PostgreSQL. Solo inserción.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create agrega una fila al libro.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.ProductID, t.StoreID, t.Type, t.QuantityChanged, t.QuantityBefore, t.QuantityAfter,
		t.UnitCost, t.Reason, nullable(t.OrderID), nullable(t.OrderItemID), nullable(t.TransferID),
		nullable(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// List movimientos filtrados, más reciente primero.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error) {
	var c conditions
	c.eq("product_id::text", f.ProductID)
	c.eq("store_id::text", f.StoreID)
	c.eq("type", f.Type)
	c.eq("order_id::text", f.OrderID)
	c.eq("transfer_id::text", f.TransferID)
	c.between("created_at", f.From, f.To)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_transactions`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory transactions: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions`+c.where()+
		` ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var orderID, orderItemID, transferID, createdBy *string
		if err := rows.Scan(&t.ID, &t.ProductID, &t.StoreID, &t.Type, &t.QuantityChanged, &t.QuantityBefore,
			&t.QuantityAfter, &t.UnitCost, &t.Reason, &orderID, &orderItemID, &transferID, &createdBy, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan inventory transaction: %w", err)
		}
		t.OrderID, t.OrderItemID, t.TransferID, t.CreatedBy = deref(orderID), deref(orderItemID), deref(transferID), deref(createdBy)
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// SumChanged suma de cantidades movidas para (producto, tienda); base de la conciliación.
func (r *TransactionRepo) SumChanged(ctx context.Context, productID, storeID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(sum(quantity_changed), 0) FROM inventory_transactions
		WHERE product_id = $1 AND store_id = $2`, productID, storeID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory transactions: %w", err)
	}
	return sum, nil
}
