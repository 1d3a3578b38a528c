package entity

import "time"

// Category agrupa productos; también define el alcance de visibilidad de un rol.
type Category struct {
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubCategory subdivisión de una categoría.
type SubCategory struct {
	ID          string
	CategoryID  string
	Code        string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
