package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Counts totales de catálogo, existencias y actividad desde since.
func (r *DashboardRepo) Counts(ctx context.Context, lowThreshold decimal.Decimal, since time.Time) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT count(*) FROM products WHERE is_active)                                    AS active_products,
	    (SELECT count(*) FROM stores   WHERE is_active)                                    AS active_stores,
	    (SELECT COALESCE(sum(quantity), 0) FROM inventory)                                 AS total_quantity,
	    (SELECT count(*) FROM inventory WHERE quantity > 0 AND quantity <= $1)             AS low_stock,
	    (SELECT count(*) FROM inventory WHERE quantity = 0)                                AS zero_stock,
	    (SELECT count(*) FROM orders WHERE order_date >= $2)                               AS recent_orders,
	    (SELECT count(*) FROM store_transfers WHERE transfer_date >= $2)                   AS recent_transfers`

	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query, lowThreshold, since).Scan(
		&c.ActiveProducts,
		&c.ActiveStores,
		&c.TotalQuantity,
		&c.LowStock,
		&c.ZeroStock,
		&c.RecentOrders,
		&c.RecentTransfers,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Counts: %w", err)
	}
	return &c, nil
}

// RecentTransactions últimos movimientos del libro, el más reciente primero.
func (r *DashboardRepo) RecentTransactions(ctx context.Context, limit int) ([]repository.RecentTransaction, error) {
	const query = `
	SELECT t.id, t.product_id, p.code, p.name, t.store_id, s.name,
	       t.type, t.quantity_changed, t.reason, t.created_at
	FROM inventory_transactions t
	JOIN products p ON p.id = t.product_id
	JOIN stores   s ON s.id = t.store_id
	ORDER BY t.created_at DESC, t.id
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.RecentTransactions: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.RecentTransaction, error) {
		var t repository.RecentTransaction
		err := row.Scan(&t.ID, &t.ProductID, &t.ProductCode, &t.ProductName, &t.StoreID, &t.StoreName,
			&t.Type, &t.QuantityChanged, &t.Reason, &t.CreatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard.RecentTransactions scan: %w", err)
	}
	return list, nil
}

// TopProducts productos con mayor existencia total entre todas las tiendas.
func (r *DashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.ProductStockTotal, error) {
	const query = `
	SELECT p.id, p.code, p.name,
	       COALESCE(sum(i.quantity), 0) AS total_quantity,
	       count(i.store_id)            AS store_count
	FROM inventory i
	JOIN products p ON p.id = i.product_id
	GROUP BY p.id, p.code, p.name
	ORDER BY total_quantity DESC, p.code
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ProductStockTotal, error) {
		var p repository.ProductStockTotal
		err := row.Scan(&p.ProductID, &p.ProductCode, &p.ProductName, &p.TotalQuantity, &p.StoreCount)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
	}
	return list, nil
}

// StorePerformance existencias agregadas por tienda activa, incluidas las que no tienen filas.
func (r *DashboardRepo) StorePerformance(ctx context.Context, lowThreshold decimal.Decimal) ([]repository.StoreStockTotal, error) {
	const query = `
	SELECT s.id, s.code, s.name, s.is_main_warehouse,
	       count(i.product_id)                                            AS products,
	       COALESCE(sum(i.quantity), 0)                                   AS total_quantity,
	       count(*) FILTER (WHERE i.quantity > 0 AND i.quantity <= $1)   AS low_stock,
	       count(*) FILTER (WHERE i.quantity = 0)                         AS zero_stock
	FROM stores s
	LEFT JOIN inventory i ON i.store_id = s.id
	WHERE s.is_active
	GROUP BY s.id, s.code, s.name, s.is_main_warehouse
	ORDER BY s.is_main_warehouse DESC, s.name`

	rows, err := r.q.Query(ctx, query, lowThreshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard.StorePerformance: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.StoreStockTotal, error) {
		var s repository.StoreStockTotal
		err := row.Scan(&s.StoreID, &s.StoreCode, &s.StoreName, &s.IsMainWarehouse,
			&s.Products, &s.TotalQuantity, &s.LowStock, &s.ZeroStock)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard.StorePerformance scan: %w", err)
	}
	return list, nil
}

// MonthlyTransactions agrupa el libro por mes calendario (UTC) desde from.
func (r *DashboardRepo) MonthlyTransactions(ctx context.Context, from time.Time) ([]repository.MonthlyMovements, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR  FROM t.created_at AT TIME ZONE 'UTC')::int                      AS tx_year,
	    EXTRACT(MONTH FROM t.created_at AT TIME ZONE 'UTC')::int                      AS tx_month,
	    count(*)                                                                     AS transactions,
	    COALESCE(sum(abs(t.quantity_changed)), 0)                                    AS total_quantity,
	    count(*) FILTER (WHERE t.type = $2)                                          AS purchases,
	    count(*) FILTER (WHERE t.type = $3)                                          AS sales,
	    count(*) FILTER (WHERE t.type LIKE 'ADJUSTMENT%')                            AS adjustments
	FROM inventory_transactions t
	WHERE t.created_at >= $1
	GROUP BY tx_year, tx_month
	ORDER BY tx_year, tx_month`

	rows, err := r.q.Query(ctx, query, from, entity.TxTypePurchase, entity.TxTypeSale)
	if err != nil {
		return nil, fmt.Errorf("dashboard.MonthlyTransactions: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.MonthlyMovements, error) {
		var m repository.MonthlyMovements
		var month int
		err := row.Scan(&m.Year, &month, &m.Transactions, &m.TotalQuantity, &m.Purchases, &m.Sales, &m.Adjustments)
		m.Month = time.Month(month)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard.MonthlyTransactions scan: %w", err)
	}
	return list, nil
}

// StockAlerts existencias agotadas (outOfStock) o en 0 < cantidad <= threshold, las más bajas primero.
func (r *DashboardRepo) StockAlerts(ctx context.Context, threshold decimal.Decimal, outOfStock bool, limit int) ([]*entity.InventoryView, error) {
	c := &conditions{}
	if outOfStock {
		c.add("i.quantity = 0")
	} else {
		c.add("i.quantity > 0 AND i.quantity <= ?", threshold)
	}
	c.add("p.is_active AND s.is_active")
	pageSQL, args := c.page(limit, 0)
	rows, err := r.q.Query(ctx, inventoryViewSelect+c.where()+` ORDER BY i.quantity, p.code, s.name`+pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("dashboard.StockAlerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryView
	for rows.Next() {
		v, err := scanInventoryView(rows)
		if err != nil {
			return nil, fmt.Errorf("dashboard.StockAlerts scan: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
