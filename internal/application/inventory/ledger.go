package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/inventory"
)

// Entry movimiento a registrar en el libro de inventario.
type Entry struct {
	ProductID     string
	StoreID       string
	Type          string
	Delta         decimal.Decimal
	UnitCost      decimal.Decimal
	Reason        string
	OrderID       string
	OrderItemID   string
	TransferID    string
	AllowNegative bool
	CreatedBy     string
	At            time.Time
}

// Post es el único camino para cambiar una existencia: bloquea la fila (SELECT FOR UPDATE),
// aplica el delta, guarda la existencia y agrega la transacción con saldo anterior y posterior.
// Debe llamarse dentro de TxRunner.Run.
func Post(ctx context.Context, uow ports.UnitOfWork, e Entry) (*entity.InventoryTransaction, error) {
	inv, err := uow.Inventory.GetForUpdate(ctx, e.ProductID, e.StoreID)
	if err != nil {
		return nil, err
	}
	before := inv.Quantity
	after, err := inventory.ApplyDelta(before, e.Delta, e.AllowNegative)
	if err != nil {
		return nil, err
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	inv.Quantity = after
	inv.UpdatedAt = e.At
	if err := uow.Inventory.Upsert(ctx, inv); err != nil {
		return nil, err
	}

	tx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ProductID:       e.ProductID,
		StoreID:         e.StoreID,
		Type:            e.Type,
		QuantityChanged: e.Delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
		UnitCost:        e.UnitCost,
		Reason:          e.Reason,
		OrderID:         e.OrderID,
		OrderItemID:     e.OrderItemID,
		TransferID:      e.TransferID,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.At,
	}
	if err := uow.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ToTransactionResponse mapea una fila del libro al DTO de salida.
func ToTransactionResponse(t *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		StoreID:         t.StoreID,
		Type:            t.Type,
		QuantityChanged: t.QuantityChanged,
		QuantityBefore:  t.QuantityBefore,
		QuantityAfter:   t.QuantityAfter,
		UnitCost:        t.UnitCost,
		Reason:          t.Reason,
		OrderID:         t.OrderID,
		OrderItemID:     t.OrderItemID,
		TransferID:      t.TransferID,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}
