package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea de un traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// TransferRequest crear o editar un traslado en borrador.
type TransferRequest struct {
	FromStoreID  string                `json:"from_store_id" validate:"required,uuid"`
	ToStoreID    string                `json:"to_store_id" validate:"required,uuid,nefield=FromStoreID"`
	TransferDate *time.Time            `json:"transfer_date"`
	Notes        string                `json:"notes" validate:"max=1000"`
	Items        []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransferItemResponse línea de un traslado.
type TransferItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes,omitempty"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	FromStoreID   string                 `json:"from_store_id"`
	ToStoreID     string                 `json:"to_store_id"`
	TransferDate  time.Time              `json:"transfer_date"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
	TotalQuantity decimal.Decimal        `json:"total_quantity"`
	CreatedBy     string                 `json:"created_by,omitempty"`
	CompletedBy   string                 `json:"completed_by,omitempty"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
	CancelledAt   *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Items         []TransferItemResponse `json:"items"`
}

// TransferListResponse lista paginada de traslados (sin líneas).
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferListQuery filtros de GET /api/store-transfers.
type TransferListQuery struct {
	PageRequest
	Status      string     `query:"status" validate:"omitempty,oneof=DRAFT COMPLETED CANCELLED"`
	FromStoreID string     `query:"from_store_id" validate:"omitempty,uuid"`
	ToStoreID   string     `query:"to_store_id" validate:"omitempty,uuid"`
	From        *time.Time `query:"-"`
	To          *time.Time `query:"-"`
}
