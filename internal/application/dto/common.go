package dto

import "github.com/shopspring/decimal"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o inválidos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details []ShortageDTO     `json:"details,omitempty"`
}

// ShortageDTO línea sin existencia suficiente.
type ShortageDTO struct {
	ProductID string          `json:"product_id"`
	StoreID   string          `json:"store_id"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// MessageResponse respuesta simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// CatalogResponse lista de códigos (estados, tipos de transacción).
type CatalogResponse struct {
	Items []string `json:"items"`
}

// StatusesResponse estados válidos por tipo de documento.
type StatusesResponse struct {
	Orders    []string `json:"orders"`
	Transfers []string `json:"transfers"`
}
