package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// maxReplenishmentRows máximo de productos evaluados por consulta.
const maxReplenishmentRows = 500

// ReplenishmentUseCase genera la lista de reposición de una tienda a partir de los
// productos que están en o bajo su nivel de reorden.
type ReplenishmentUseCase struct {
	invRepo repository.InventoryRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(invRepo repository.InventoryRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{invRepo: invRepo}
}

// GenerateReplenishmentList devuelve la cantidad sugerida de pedido por producto, ordenada
// por déficit relativo (el más vacío primero). storeID vacío considera todas las tiendas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, storeID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rows, _, err := uc.invRepo.LowStock(ctx, nil, decimal.Zero, scopedFilter(ctx, storeID, ""), maxReplenishmentRows, 0)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rows))
	for _, r := range rows {
		if !r.ReorderLevel.IsPositive() {
			continue
		}
		ideal := r.ReorderLevel.Mul(factor)
		qty := ideal.Sub(r.Quantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          r.ProductID,
			ProductCode:        r.ProductCode,
			ProductName:        r.ProductName,
			StoreID:            r.StoreID,
			StoreName:          r.StoreName,
			CurrentStock:       r.Quantity,
			ReorderLevel:       r.ReorderLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           r.UnitCost,
			EstimatedOrderCost: qty.Mul(r.UnitCost),
		})
	}

	// déficit relativo = (reorden - actual) / reorden; desempate por costo estimado
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra := a.ReorderLevel.Sub(a.CurrentStock).Div(a.ReorderLevel)
		rb := b.ReorderLevel.Sub(b.CurrentStock).Div(b.ReorderLevel)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
