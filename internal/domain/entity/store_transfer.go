package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre tiendas.
const (
	TransferStatusDraft     = "DRAFT"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// TransferStatuses catálogo expuesto por la API.
var TransferStatuses = []string{TransferStatusDraft, TransferStatusCompleted, TransferStatusCancelled}

// StoreTransfer mueve existencias de FromStoreID a ToStoreID.
// Ciclo de vida: DRAFT -> COMPLETED | CANCELLED. FromStoreID != ToStoreID.
type StoreTransfer struct {
	ID           string
	Number       string // consecutivo legible, ej. TR-20260101-0001
	FromStoreID  string
	ToStoreID    string
	TransferDate time.Time
	Status       string
	Notes        string
	CreatedBy    string
	CompletedBy  string
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []StoreTransferItem
}

// StoreTransferItem línea de un traslado.
type StoreTransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Notes      string
}

// IsDraft indica si el traslado aún es editable.
func (t *StoreTransfer) IsDraft() bool { return t.Status == TransferStatusDraft }

// TotalQuantity suma de cantidades de todas las líneas.
func (t *StoreTransfer) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, it := range t.Items {
		total = total.Add(it.Quantity)
	}
	return total
}
