package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", formatMoney(decimal.Zero))
	assert.Equal(t, "999", formatMoney(decimal.NewFromInt(999)))
	assert.Equal(t, "25.000", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.000.000", formatMoney(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-1.500", formatMoney(decimal.NewFromInt(-1500)))
}

func TestRenderTransferSlip_GeneraPDF(t *testing.T) {
	slip := ports.TransferSlip{
		Transfer: &entity.StoreTransfer{
			Number:       "TR-20261019-0001",
			TransferDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			Status:       entity.TransferStatusDraft,
			Items: []entity.StoreTransferItem{
				{ProductID: "p1", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(1200)},
				{ProductID: "desconocido", Quantity: decimal.NewFromInt(1), UnitCost: decimal.Zero},
			},
		},
		FromStore: &entity.Store{Name: "Central"},
		ToStore:   &entity.Store{Name: "Norte", Address: "Calle 1"},
		Products:  map[string]*entity.Product{"p1": {Code: "A-1", Name: "Tornillo"}},
	}

	b, err := NewMarotoRenderer().RenderTransferSlip(slip)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestRenderTransferSlip_SinTraslado(t *testing.T) {
	_, err := NewMarotoRenderer().RenderTransferSlip(ports.TransferSlip{})
	assert.Error(t, err)
}
