package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/inventory/adjust. Quantity es el delta con signo.
type AdjustInventoryRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	StoreID       string          `json:"store_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason" validate:"required,min=3,max=500"`
	AllowNegative bool            `json:"allow_negative"`
}

// BulkAdjustRequest varios ajustes atómicos.
type BulkAdjustRequest struct {
	Items []AdjustInventoryRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// InitialStockRequest saldo inicial de un producto en una tienda.
type InitialStockRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	StoreID   string          `json:"store_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// InventoryResponse existencia de un producto en una tienda.
type InventoryResponse struct {
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	StoreID      string          `json:"store_id"`
	StoreName    string          `json:"store_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InventoryListResponse lista paginada de existencias.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InventoryListQuery filtros de GET /api/inventory.
type InventoryListQuery struct {
	PageRequest
	StoreID   string `query:"store_id" validate:"omitempty,uuid"`
	ProductID string `query:"product_id" validate:"omitempty,uuid"`
}

// LowStockQuery filtros de GET /api/inventory/low-stock. Sin threshold usa el nivel de reorden, o 10 si el producto no tiene.
type LowStockQuery struct {
	PageRequest
	StoreID   string           `query:"store_id" validate:"omitempty,uuid"`
	Threshold *decimal.Decimal `query:"-"`
}

// InventorySummaryResponse totales de existencias.
type InventorySummaryResponse struct {
	TotalProducts     int             `json:"total_products"`
	TotalStores       int             `json:"total_stores"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockItems     int             `json:"low_stock_items"`
	ZeroStockItems    int             `json:"zero_stock_items"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// TransactionResponse fila del libro de inventario.
type TransactionResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	StoreID         string          `json:"store_id"`
	Type            string          `json:"type"`
	QuantityChanged decimal.Decimal `json:"quantity_changed"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Reason          string          `json:"reason,omitempty"`
	OrderID         string          `json:"order_id,omitempty"`
	OrderItemID     string          `json:"order_item_id,omitempty"`
	TransferID      string          `json:"transfer_id,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionListResponse lista paginada del libro.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// TransactionListQuery filtros de GET /api/inventory-transactions.
type TransactionListQuery struct {
	PageRequest
	ProductID  string     `query:"product_id" validate:"omitempty,uuid"`
	StoreID    string     `query:"store_id" validate:"omitempty,uuid"`
	Type       string     `query:"type"`
	OrderID    string     `query:"order_id" validate:"omitempty,uuid"`
	TransferID string     `query:"transfer_id" validate:"omitempty,uuid"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
}

// ReconcileResponse comparación entre existencia y suma del libro.
type ReconcileResponse struct {
	ProductID   string          `json:"product_id"`
	StoreID     string          `json:"store_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LedgerTotal decimal.Decimal `json:"ledger_total"`
	Difference  decimal.Decimal `json:"difference"`
	Balanced    bool            `json:"balanced"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto bajo su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductCode        string          `json:"product_code"`
	ProductName        string          `json:"product_name"`
	StoreID            string          `json:"store_id"`
	StoreName          string          `json:"store_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderLevel       decimal.Decimal `json:"reorder_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // ReorderLevel * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
