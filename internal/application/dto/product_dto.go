package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	CategoryID    string          `json:"category_id" validate:"omitempty,uuid"`
	SubCategoryID string          `json:"sub_category_id" validate:"omitempty,uuid"`
	UnitID        string          `json:"unit_id" validate:"omitempty,uuid"`
	Unit          string          `json:"unit" validate:"omitempty,max=20"`
	Price         decimal.Decimal `json:"price"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
}

// UpdateProductRequest entrada para actualizar un producto (Cost solo cambia con compras).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,uuid"`
	SubCategoryID *string          `json:"sub_category_id" validate:"omitempty,uuid|len=0"`
	UnitID        *string          `json:"unit_id" validate:"omitempty,uuid|len=0"`
	Unit          *string          `json:"unit" validate:"omitempty,max=20"`
	Price         *decimal.Decimal `json:"price"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id,omitempty"`
	SubCategoryID string          `json:"sub_category_id,omitempty"`
	UnitID        string          `json:"unit_id,omitempty"`
	Unit          string          `json:"unit"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	PageRequest
	Search        string `query:"search"`
	CategoryID    string `query:"category_id" validate:"omitempty,uuid"`
	SubCategoryID string `query:"sub_category_id" validate:"omitempty,uuid"`
	OnlyActive    bool   `query:"only_active"`
}
