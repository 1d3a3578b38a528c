package entity

import (
	"slices"
	"time"
)

// Role agrupa permisos y, opcionalmente, restringe la visibilidad a ciertas
// categorías o productos (listas vacías = sin restricción).
type Role struct {
	ID          string
	Name        string
	Description string
	IsAdmin     bool
	Permissions []string
	CategoryIDs []string
	ProductIDs  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Has indica si el rol incluye el permiso.
func (r *Role) Has(code string) bool {
	return r.IsAdmin || slices.Contains(r.Permissions, code)
}
