package entity

import "time"

// Store representa una tienda o bodega donde se almacena inventario.
type Store struct {
	ID              string
	Code            string
	Name            string
	Address         string
	Phone           string
	IsMainWarehouse bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
