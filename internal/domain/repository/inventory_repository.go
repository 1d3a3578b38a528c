package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// InventoryRepository existencias por (producto, tienda).
// Get y GetForUpdate devuelven cantidad cero si la fila no existe; Exists distingue ese caso.
type InventoryRepository interface {
	Get(ctx context.Context, productID, storeID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Inventory, error)
	Exists(ctx context.Context, productID, storeID string) (bool, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, f InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error)
	// LowStock filas con cantidad <= threshold. Con threshold nil compara contra el nivel de
	// reorden del producto, o contra fallback si el producto no tiene nivel; fallback cero los omite.
	LowStock(ctx context.Context, threshold *decimal.Decimal, fallback decimal.Decimal, f InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error)
	Summary(ctx context.Context, lowThreshold decimal.Decimal) (*entity.InventorySummary, error)
}

// InventoryTransactionRepository libro de inventario (solo inserción).
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error)
	// SumChanged suma de QuantityChanged para (producto, tienda).
	SumChanged(ctx context.Context, productID, storeID string) (decimal.Decimal, error)
}
