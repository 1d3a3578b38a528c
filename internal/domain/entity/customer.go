package entity

import "time"

// Customer cliente de órdenes de venta.
type Customer struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
