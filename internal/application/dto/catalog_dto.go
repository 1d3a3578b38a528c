package dto

import "time"

// ListQuery filtros comunes de catálogos.
type ListQuery struct {
	PageRequest
	Search     string `query:"search"`
	OnlyActive bool   `query:"only_active"`
}

// CategoryRequest crear/actualizar categoría.
type CategoryRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=50"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SubCategoryRequest crear/actualizar subcategoría.
type SubCategoryRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Code        string `json:"code" validate:"required,min=1,max=50"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	IsActive    *bool  `json:"is_active"`
}

// SubCategoryResponse salida de una subcategoría.
type SubCategoryResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubCategoryListQuery filtros de GET /api/sub-categories.
type SubCategoryListQuery struct {
	ListQuery
	CategoryID string `query:"category_id"`
}

// SubCategoryListResponse lista paginada.
type SubCategoryListResponse struct {
	Items []SubCategoryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// UnitRequest crear/actualizar unidad de medida.
type UnitRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=20"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnitListResponse lista paginada.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// StoreRequest crear/actualizar tienda.
type StoreRequest struct {
	Code            string `json:"code" validate:"required,min=1,max=50"`
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Address         string `json:"address" validate:"max=500"`
	Phone           string `json:"phone" validate:"max=50"`
	IsMainWarehouse bool   `json:"is_main_warehouse"`
	IsActive        *bool  `json:"is_active"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	IsMainWarehouse bool      `json:"is_main_warehouse"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StoreListResponse lista paginada.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PartnerRequest crear/actualizar cliente o proveedor.
type PartnerRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ContactName string `json:"contact_name" validate:"max=200"`
	TaxID       string `json:"tax_id" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Address     string `json:"address" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

// PartnerResponse salida de cliente o proveedor.
type PartnerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	TaxID       string    `json:"tax_id"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartnerListResponse lista paginada.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
