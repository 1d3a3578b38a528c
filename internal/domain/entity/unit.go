package entity

import "time"

// Unit unidad de medida de un producto (UND, KG, CAJA...). Product.Unit guarda su código.
type Unit struct {
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
