package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory existencia actual de un producto en una tienda. Única por (producto, tienda).
// Solo cambia junto con un InventoryTransaction en la misma transacción de BD.
type Inventory struct {
	ProductID string
	StoreID   string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// InventoryView proyección de Inventory con datos de producto y tienda para listados.
type InventoryView struct {
	Inventory
	ProductCode  string
	ProductName  string
	CategoryID   string
	StoreName    string
	ReorderLevel decimal.Decimal
	UnitCost     decimal.Decimal
}

// InventorySummary totales globales de existencias.
type InventorySummary struct {
	TotalProducts   int
	TotalStores     int
	TotalQuantity   decimal.Decimal
	TotalValue      decimal.Decimal // cantidad * costo promedio
	LowStockItems   int
	ZeroStockItems  int
	LowStockCeiling decimal.Decimal
}
