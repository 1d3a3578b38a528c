package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}

// ApplyDelta calcula la existencia resultante de aplicar delta a before.
// Con allowNegative=false un resultado < 0 devuelve ErrNegativeStock.
func ApplyDelta(before, delta decimal.Decimal, allowNegative bool) (decimal.Decimal, error) {
	after := before.Add(delta)
	if after.IsNegative() && !allowNegative {
		return before, domain.ErrNegativeStock
	}
	return after, nil
}

// AdjustmentType tipo de transacción según el signo del ajuste.
func AdjustmentType(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return entity.TxTypeAdjustmentMinus
	}
	return entity.TxTypeAdjustmentPlus
}
