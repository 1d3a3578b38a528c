package entity

import "time"

// Supplier proveedor de órdenes de compra.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	TaxID       string
	Email       string
	Phone       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
