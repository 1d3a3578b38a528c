package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryViewSelect = `
	SELECT i.product_id, i.store_id, i.quantity, i.updated_at,
		p.code, p.name, p.category_id, s.name, p.reorder_level, p.cost
	FROM inventory i
	JOIN products p ON p.id = i.product_id
	JOIN stores s ON s.id = i.store_id`

// InventoryRepo existencias por (producto, tienda) sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get existencia actual; cantidad cero si la fila no existe.
func (r *InventoryRepo) Get(ctx context.Context, productID, storeID string) (*entity.Inventory, error) {
	return r.get(ctx, `
		SELECT product_id, store_id, quantity, updated_at FROM inventory
		WHERE product_id = $1 AND store_id = $2`, productID, storeID)
}

// GetForUpdate crea la fila en cero si falta y la bloquea hasta el fin de la transacción,
// así dos movimientos concurrentes sobre una existencia nueva también se serializan.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Inventory, error) {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO inventory (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, store_id) DO NOTHING`, productID, storeID); err != nil {
		return nil, fmt.Errorf("ensure inventory row: %w", err)
	}
	return r.get(ctx, `
		SELECT product_id, store_id, quantity, updated_at FROM inventory
		WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`, productID, storeID)
}

func (r *InventoryRepo) get(ctx context.Context, query, productID, storeID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(&inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return &entity.Inventory{ProductID: productID, StoreID: storeID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Exists indica si ya hay fila de existencia para (producto, tienda).
func (r *InventoryRepo) Exists(ctx context.Context, productID, storeID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM inventory WHERE product_id = $1 AND store_id = $2)`,
		productID, storeID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("inventory exists: %w", err)
	}
	return ok, nil
}

// Upsert guarda la cantidad de la existencia.
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, store_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		inv.ProductID, inv.StoreID, inv.Quantity, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List existencias con nombres de producto y tienda.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error) {
	c := inventoryConditions(f)
	return r.views(ctx, c, limit, offset)
}

// LowStock existencias por debajo del umbral indicado o del nivel de reorden del producto.
func (r *InventoryRepo) LowStock(ctx context.Context, threshold *decimal.Decimal, fallback decimal.Decimal, f repository.InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error) {
	c := inventoryConditions(f)
	switch {
	case threshold != nil:
		c.add("i.quantity <= ?", *threshold)
	case fallback.IsPositive():
		c.add("i.quantity <= CASE WHEN p.reorder_level > 0 THEN p.reorder_level ELSE ? END", fallback)
	default:
		c.add("p.reorder_level > 0 AND i.quantity <= p.reorder_level")
	}
	return r.views(ctx, c, limit, offset)
}

// Summary totales globales; LowStockItems cuenta filas con cantidad <= lowThreshold.
func (r *InventoryRepo) Summary(ctx context.Context, lowThreshold decimal.Decimal) (*entity.InventorySummary, error) {
	s := &entity.InventorySummary{LowStockCeiling: lowThreshold}
	err := r.q.QueryRow(ctx, `
		SELECT count(DISTINCT i.product_id), count(DISTINCT i.store_id),
			COALESCE(sum(i.quantity), 0), COALESCE(sum(i.quantity * p.cost), 0),
			count(*) FILTER (WHERE i.quantity <= $1), count(*) FILTER (WHERE i.quantity = 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id`, lowThreshold).Scan(
		&s.TotalProducts, &s.TotalStores, &s.TotalQuantity, &s.TotalValue, &s.LowStockItems, &s.ZeroStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return s, nil
}

func inventoryConditions(f repository.InventoryFilter) *conditions {
	c := &conditions{}
	c.eq("i.store_id::text", f.StoreID)
	c.eq("i.product_id::text", f.ProductID)
	c.scope("p.id::text", "p.category_id::text", f.CategoryIDs, f.ProductIDs)
	return c
}

func (r *InventoryRepo) views(ctx context.Context, c *conditions, limit, offset int) ([]*entity.InventoryView, int, error) {
	var total int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN stores s ON s.id = i.store_id`+c.where(), c.args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, inventoryViewSelect+c.where()+` ORDER BY p.code, s.name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryView
	for rows.Next() {
		v, err := scanInventoryView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// scanInventoryView lee una fila de inventoryViewSelect.
func scanInventoryView(row pgx.Row) (*entity.InventoryView, error) {
	var v entity.InventoryView
	var categoryID *string
	if err := row.Scan(&v.ProductID, &v.StoreID, &v.Quantity, &v.UpdatedAt,
		&v.ProductCode, &v.ProductName, &categoryID, &v.StoreName, &v.ReorderLevel, &v.UnitCost); err != nil {
		return nil, err
	}
	v.CategoryID = deref(categoryID)
	return &v, nil
}
