package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	StoreID   string          `json:"store_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Discount  decimal.Decimal `json:"discount"`
}

// OrderRequest crear o editar una orden (borrador o pendiente).
type OrderRequest struct {
	Type       string             `json:"type" validate:"required,oneof=PURCHASE SALE"`
	CustomerID string             `json:"customer_id" validate:"omitempty,uuid"`
	SupplierID string             `json:"supplier_id" validate:"omitempty,uuid"`
	OrderDate  *time.Time         `json:"order_date"`
	Notes      string             `json:"notes" validate:"max=1000"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	StoreID   string          `json:"store_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	Number      string              `json:"number"`
	Type        string              `json:"type"`
	Status      string              `json:"status"`
	CustomerID  string              `json:"customer_id,omitempty"`
	SupplierID  string              `json:"supplier_id,omitempty"`
	OrderDate   time.Time           `json:"order_date"`
	Notes       string              `json:"notes,omitempty"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Discount    decimal.Decimal     `json:"discount"`
	Total       decimal.Decimal     `json:"total"`
	CreatedBy   string              `json:"created_by,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderListQuery filtros de GET /api/orders.
type OrderListQuery struct {
	PageRequest
	Type       string     `query:"type" validate:"omitempty,oneof=PURCHASE SALE"`
	Status     string     `query:"status" validate:"omitempty,oneof=DRAFT PENDING COMPLETED CANCELLED"`
	CustomerID string     `query:"customer_id" validate:"omitempty,uuid"`
	SupplierID string     `query:"supplier_id" validate:"omitempty,uuid"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
}
