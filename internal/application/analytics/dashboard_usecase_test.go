package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

type fakeDashboardRepo struct {
	since     time.Time
	from      time.Time
	limit     int
	counts    repository.DashboardCounts
	monthly   []repository.MonthlyMovements
	low, zero []*entity.InventoryView
	alertsErr error
}

func (f *fakeDashboardRepo) Counts(_ context.Context, _ decimal.Decimal, since time.Time) (*repository.DashboardCounts, error) {
	f.since = since
	c := f.counts
	return &c, nil
}

func (f *fakeDashboardRepo) RecentTransactions(_ context.Context, limit int) ([]repository.RecentTransaction, error) {
	f.limit = limit
	return nil, nil
}

func (f *fakeDashboardRepo) TopProducts(_ context.Context, limit int) ([]repository.ProductStockTotal, error) {
	f.limit = limit
	return []repository.ProductStockTotal{{ProductCode: "P-1", TotalQuantity: decimal.NewFromInt(40), StoreCount: 2}}, nil
}

func (f *fakeDashboardRepo) StorePerformance(context.Context, decimal.Decimal) ([]repository.StoreStockTotal, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) MonthlyTransactions(_ context.Context, from time.Time) ([]repository.MonthlyMovements, error) {
	f.from = from
	return f.monthly, nil
}

func (f *fakeDashboardRepo) StockAlerts(_ context.Context, _ decimal.Decimal, outOfStock bool, _ int) ([]*entity.InventoryView, error) {
	if f.alertsErr != nil {
		return nil, f.alertsErr
	}
	if outOfStock {
		return f.zero, nil
	}
	return f.low, nil
}

func view(code string, qty int64) *entity.InventoryView {
	return &entity.InventoryView{Inventory: entity.Inventory{ProductID: code, Quantity: decimal.NewFromInt(qty)}, ProductCode: code, ProductName: code, StoreName: "Centro"}
}

func fixedNow(uc *DashboardUseCase, t time.Time) {
	uc.now = func() time.Time { return t }
}

func TestOverview_ActividadDeLosUltimosSieteDias(t *testing.T) {
	repo := &fakeDashboardRepo{counts: repository.DashboardCounts{ActiveProducts: 3, LowStock: 1, RecentOrders: 2}}
	uc := NewDashboardUseCase(repo)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	fixedNow(uc, now)

	out, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 2, out.RecentOrders)
	assert.True(t, out.LowStockThreshold.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, now.AddDate(0, 0, -7), repo.since)
}

func TestTopProducts_LimitePorDefectoYMaximo(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := NewDashboardUseCase(repo)

	out, err := uc.TopProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.limit)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].StoreCount)

	_, err = uc.TopProducts(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.limit)
}

func TestMonthlyTransactions_RellenaMesesVacios(t *testing.T) {
	repo := &fakeDashboardRepo{monthly: []repository.MonthlyMovements{
		{Year: 2025, Month: time.December, Transactions: 4, TotalQuantity: decimal.NewFromInt(30), Sales: 3},
		{Year: 2026, Month: time.February, Transactions: 1, TotalQuantity: decimal.NewFromInt(5), Purchases: 1},
	}}
	uc := NewDashboardUseCase(repo)
	fixedNow(uc, time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC))

	out, err := uc.MonthlyTransactions(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), repo.from)
	require.Len(t, out, 3)

	assert.Equal(t, "Diciembre 2025", out[0].Label)
	assert.Equal(t, 3, out[0].SaleTransactions)
	assert.Equal(t, "Enero 2026", out[1].Label)
	assert.Zero(t, out[1].TransactionCount)
	assert.True(t, out[1].TotalQuantityChanged.IsZero())
	assert.Equal(t, 2, out[2].Month)
	assert.Equal(t, 1, out[2].PurchaseTransactions)
}

func TestAlerts_SeveridadAltaPrimero(t *testing.T) {
	repo := &fakeDashboardRepo{
		low:  []*entity.InventoryView{view("MEDIO", 8), view("CRITICO", 3)},
		zero: []*entity.InventoryView{view("AGOTADO", 0)},
	}
	uc := NewDashboardUseCase(repo)

	out, err := uc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "CRITICO", out[0].ProductCode)
	assert.Equal(t, dto.AlertSeverityHigh, out[0].Severity)
	assert.Equal(t, dto.AlertTypeLowStock, out[0].Type)
	assert.Equal(t, "AGOTADO", out[1].ProductCode)
	assert.Equal(t, dto.AlertTypeOutOfStock, out[1].Type)
	assert.Equal(t, "MEDIO", out[2].ProductCode)
	assert.Equal(t, dto.AlertSeverityMedium, out[2].Severity)
	assert.Contains(t, out[2].Message, "cantidad: 8")
}

func TestAlerts_ErrorDeRepositorio(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboardRepo{alertsErr: errors.New("sin conexión")})

	_, err := uc.Alerts(context.Background())
	assert.ErrorContains(t, err, "sin conexión")
}
