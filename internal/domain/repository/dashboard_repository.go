package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// DashboardRepository consultas de solo lectura para el tablero de inventario.
type DashboardRepository interface {
	// Counts totales generales; LowStock cuenta filas con 0 < cantidad <= lowThreshold.
	Counts(ctx context.Context, lowThreshold decimal.Decimal, since time.Time) (*DashboardCounts, error)
	RecentTransactions(ctx context.Context, limit int) ([]RecentTransaction, error)
	TopProducts(ctx context.Context, limit int) ([]ProductStockTotal, error)
	StorePerformance(ctx context.Context, lowThreshold decimal.Decimal) ([]StoreStockTotal, error)
	// MonthlyTransactions solo devuelve los meses con movimientos desde from.
	MonthlyTransactions(ctx context.Context, from time.Time) ([]MonthlyMovements, error)
	// StockAlerts filas con 0 < cantidad <= threshold, o con cantidad cero si outOfStock.
	StockAlerts(ctx context.Context, threshold decimal.Decimal, outOfStock bool, limit int) ([]*entity.InventoryView, error)
}

// DashboardCounts resumen general. Recent* cuentan órdenes y traslados desde la fecha indicada.
type DashboardCounts struct {
	ActiveProducts  int
	ActiveStores    int
	TotalQuantity   decimal.Decimal
	LowStock        int
	ZeroStock       int
	RecentOrders    int
	RecentTransfers int
}

// RecentTransaction movimiento del libro con nombres de producto y tienda.
type RecentTransaction struct {
	ID              string
	ProductID       string
	ProductCode     string
	ProductName     string
	StoreID         string
	StoreName       string
	Type            string
	QuantityChanged decimal.Decimal
	Reason          string
	CreatedAt       time.Time
}

// ProductStockTotal existencia total de un producto en todas las tiendas.
type ProductStockTotal struct {
	ProductID     string
	ProductCode   string
	ProductName   string
	TotalQuantity decimal.Decimal
	StoreCount    int
}

// StoreStockTotal existencias agregadas de una tienda activa.
type StoreStockTotal struct {
	StoreID         string
	StoreCode       string
	StoreName       string
	IsMainWarehouse bool
	Products        int
	TotalQuantity   decimal.Decimal
	LowStock        int
	ZeroStock       int
}

// MonthlyMovements movimientos del libro agrupados por mes.
type MonthlyMovements struct {
	Year          int
	Month         time.Month
	Transactions  int
	TotalQuantity decimal.Decimal // suma de |QuantityChanged|
	Purchases     int
	Sales         int
	Adjustments   int
}
