package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

func TestExportTransactions_EncabezadoYFilas(t *testing.T) {
	rows := []*entity.InventoryTransaction{{
		ProductID:       "p1",
		StoreID:         "s1",
		Type:            entity.TxTypeSale,
		QuantityChanged: decimal.NewFromInt(-3),
		QuantityBefore:  decimal.NewFromInt(10),
		QuantityAfter:   decimal.NewFromInt(7),
		UnitCost:        decimal.NewFromInt(2),
		CreatedAt:       time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	}}

	b, err := NewExcelExporter().ExportTransactions(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tipo", got[0][1])
	assert.Equal(t, entity.TxTypeSale, got[1][1])
	assert.Equal(t, "-3", got[1][4])
	assert.Equal(t, "7", got[1][6])
}

func TestExportInventory_Valorizacion(t *testing.T) {
	rows := []*entity.InventoryView{{
		Inventory:   entity.Inventory{Quantity: decimal.NewFromInt(4)},
		ProductCode: "A-1",
		ProductName: "Tornillo",
		StoreName:   "Central",
		UnitCost:    decimal.RequireFromString("2.5"),
	}}

	b, err := NewExcelExporter().ExportInventory(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Inventario")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A-1", got[1][0])
	assert.Equal(t, "10", got[1][6])
}
