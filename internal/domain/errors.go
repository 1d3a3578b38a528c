package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrNegativeStock       = errors.New("la existencia resultante sería negativa")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrSameStore           = errors.New("la tienda de origen y destino no pueden ser la misma")
	ErrOutsideWorkingHours = errors.New("acceso fuera del horario laboral")
)

// StockShortage describe una línea sin existencia suficiente.
type StockShortage struct {
	ProductID string
	StoreID   string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// InsufficientStockError agrupa todas las líneas con faltante. Es ErrInsufficientStock para errors.Is.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("producto %s en tienda %s: solicitado %s, disponible %s",
			s.ProductID, s.StoreID, s.Requested.String(), s.Available.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
