package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 10 u a 200 = 150
	got := CostCalculator(d("10"), d("100"), d("10"), d("200"))
	assert.True(t, got.Equal(d("150")), got.String())
}

func TestCostCalculator_SinExistenciaTomaCostoEntrada(t *testing.T) {
	got := CostCalculator(decimal.Zero, decimal.Zero, d("5"), d("12.5"))
	assert.True(t, got.Equal(d("12.5")))
}

func TestCostCalculator_SumaCeroDevuelveCero(t *testing.T) {
	got := CostCalculator(decimal.Zero, d("10"), decimal.Zero, d("10"))
	assert.True(t, got.IsZero())
}

func TestApplyDelta(t *testing.T) {
	after, err := ApplyDelta(d("5"), d("-3"), false)
	require.NoError(t, err)
	assert.True(t, after.Equal(d("2")))

	_, err = ApplyDelta(d("5"), d("-6"), false)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	after, err = ApplyDelta(d("5"), d("-6"), true)
	require.NoError(t, err)
	assert.True(t, after.Equal(d("-1")))
}

func TestAdjustmentType(t *testing.T) {
	assert.Equal(t, "ADJUSTMENT_MINUS", AdjustmentType(d("-1")))
	assert.Equal(t, "ADJUSTMENT_PLUS", AdjustmentType(d("2")))
}
