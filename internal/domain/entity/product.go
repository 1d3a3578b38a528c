package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenable en una o varias tiendas/bodegas.
// Cost es promedio ponderado recalculado con cada compra; la existencia vive en Inventory.
type Product struct {
	ID            string
	Code          string // código único, normalizado en mayúsculas
	Name          string
	Description   string
	CategoryID    string // vacío si no tiene categoría
	SubCategoryID string // debe pertenecer a CategoryID
	UnitID        string
	Unit          string          // código de la unidad de medida
	Cost          decimal.Decimal // costo promedio ponderado (inicia en 0)
	Price         decimal.Decimal // precio de venta sugerido
	ReorderLevel  decimal.Decimal // 0 = usa el umbral global de stock bajo
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
