package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario (libro mayor).
const (
	TxTypeOpeningBalance  = "OPENING_BALANCE"
	TxTypeAdjustmentPlus  = "ADJUSTMENT_PLUS"
	TxTypeAdjustmentMinus = "ADJUSTMENT_MINUS"
	TxTypePurchase        = "PURCHASE"
	TxTypeSale            = "SALE"
	TxTypePurchaseReturn  = "PURCHASE_RETURN" // reverso de una compra completada
	TxTypeSaleReturn      = "SALE_RETURN"     // reverso de una venta completada
	TxTypeTransferOut     = "TRANSFER_OUT"
	TxTypeTransferIn      = "TRANSFER_IN"
)

// TransactionTypes catálogo expuesto por la API.
var TransactionTypes = []string{
	TxTypeOpeningBalance, TxTypeAdjustmentPlus, TxTypeAdjustmentMinus,
	TxTypePurchase, TxTypeSale, TxTypePurchaseReturn, TxTypeSaleReturn,
	TxTypeTransferOut, TxTypeTransferIn,
}

// InventoryTransaction fila inmutable del libro de inventario.
// QuantityAfter = QuantityBefore + QuantityChanged. La suma de QuantityChanged por
// (producto, tienda) es igual a Inventory.Quantity.
type InventoryTransaction struct {
	ID              string
	ProductID       string
	StoreID         string
	Type            string
	QuantityChanged decimal.Decimal // positivo entra, negativo sale
	QuantityBefore  decimal.Decimal
	QuantityAfter   decimal.Decimal
	UnitCost        decimal.Decimal
	Reason          string
	OrderID         string // vacío si no proviene de una orden
	OrderItemID     string
	TransferID      string // vacío si no proviene de un traslado
	CreatedBy       string
	CreatedAt       time.Time
}

// TotalCost valor absoluto del movimiento.
func (t *InventoryTransaction) TotalCost() decimal.Decimal {
	return t.QuantityChanged.Abs().Mul(t.UnitCost)
}
