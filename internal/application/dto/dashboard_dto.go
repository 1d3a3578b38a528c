package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
type DashboardOverviewDTO struct {
	TotalProducts          int             `json:"total_products"` // productos activos
	TotalStores            int             `json:"total_stores"`   // tiendas activas
	TotalInventoryQuantity decimal.Decimal `json:"total_inventory_quantity"`
	LowStockProducts       int             `json:"low_stock_products"` // 0 < cantidad <= umbral
	ZeroStockProducts      int             `json:"zero_stock_products"`
	RecentOrders           int             `json:"recent_orders"`    // últimos 7 días
	RecentTransfers        int             `json:"recent_transfers"` // últimos 7 días
	LowStockThreshold      decimal.Decimal `json:"low_stock_threshold"`
}

// DashboardCountQuery parámetro count de los listados del tablero.
type DashboardCountQuery struct {
	Count int `query:"count" validate:"omitempty,min=1,max=100"`
}

// DashboardMonthsQuery parámetro months de GET /api/dashboard/monthly-transactions.
type DashboardMonthsQuery struct {
	Months int `query:"months" validate:"omitempty,min=1,max=24"`
}

// RecentTransactionDTO movimiento reciente del libro.
type RecentTransactionDTO struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name"`
	StoreID         string          `json:"store_id"`
	StoreName       string          `json:"store_name"`
	Type            string          `json:"type"`
	QuantityChanged decimal.Decimal `json:"quantity_changed"`
	Reason          string          `json:"reason"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TopProductDTO producto con mayor existencia total.
type TopProductDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	StoreCount    int             `json:"store_count"`
}

// StorePerformanceDTO existencias agregadas de una tienda.
type StorePerformanceDTO struct {
	StoreID           string          `json:"store_id"`
	StoreCode         string          `json:"store_code"`
	StoreName         string          `json:"store_name"`
	IsMainWarehouse   bool            `json:"is_main_warehouse"`
	TotalProducts     int             `json:"total_products"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	LowStockProducts  int             `json:"low_stock_products"`
	ZeroStockProducts int             `json:"zero_stock_products"`
}

// MonthlyTransactionsDTO movimientos de un mes; los meses sin movimientos van en cero.
type MonthlyTransactionsDTO struct {
	Year                   int             `json:"year"`
	Month                  int             `json:"month"`
	Label                  string          `json:"label"` // ej: "Febrero 2026"
	TransactionCount       int             `json:"transaction_count"`
	TotalQuantityChanged   decimal.Decimal `json:"total_quantity_changed"`
	PurchaseTransactions   int             `json:"purchase_transactions"`
	SaleTransactions       int             `json:"sale_transactions"`
	AdjustmentTransactions int             `json:"adjustment_transactions"`
}

// Tipos y severidades de DashboardAlertDTO.
const (
	AlertTypeLowStock   = "LOW_STOCK"
	AlertTypeOutOfStock = "OUT_OF_STOCK"
	AlertSeverityHigh   = "HIGH"
	AlertSeverityMedium = "MEDIUM"
)

// DashboardAlertDTO alerta de existencias; las de severidad HIGH van primero.
type DashboardAlertDTO struct {
	Type            string          `json:"type"`
	Severity        string          `json:"severity"`
	Message         string          `json:"message"`
	ProductID       string          `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	StoreID         string          `json:"store_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
}
