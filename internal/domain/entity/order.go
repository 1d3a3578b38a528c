package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderTypePurchase = "PURCHASE"
	OrderTypeSale     = "SALE"
)

// Estados de una orden.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// OrderStatuses catálogo expuesto por la API, en orden de flujo.
var OrderStatuses = []string{OrderStatusDraft, OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}

var orderTransitions = map[string][]string{
	OrderStatusDraft:     {OrderStatusPending, OrderStatusCancelled},
	OrderStatusPending:   {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {OrderStatusCancelled},
}

// CanTransitionOrder indica si el flujo permite pasar de from a to.
func CanTransitionOrder(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order orden de compra (entra inventario) o de venta (sale inventario).
type Order struct {
	ID          string
	Number      string
	Type        string
	Status      string
	CustomerID  string // solo ventas, opcional
	SupplierID  string // solo compras, obligatorio
	OrderDate   time.Time
	Notes       string
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	CreatedBy   string
	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem línea de una orden. StoreID indica de qué tienda sale o a cuál entra.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	StoreID   string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	Discount  decimal.Decimal
}

// LineTotal cantidad * precio - descuento.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Sub(i.Discount)
}

// IsPurchase indica si la orden ingresa inventario.
func (o *Order) IsPurchase() bool { return o.Type == OrderTypePurchase }

// IsEditable solo borradores y pendientes admiten cambios de líneas.
func (o *Order) IsEditable() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusPending
}

// RecalculateTotals deriva Subtotal, Discount y Total desde las líneas.
func (o *Order) RecalculateTotals() {
	sub, disc := decimal.Zero, decimal.Zero
	for _, it := range o.Items {
		sub = sub.Add(it.Quantity.Mul(it.UnitPrice))
		disc = disc.Add(it.Discount)
	}
	o.Subtotal = sub
	o.Discount = disc
	o.Total = sub.Sub(disc)
}
