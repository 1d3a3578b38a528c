// Package analytics contiene los casos de uso del tablero de inventario.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

const (
	defaultCount    = 10
	defaultMonths   = 6
	alertsPerKind   = 10
	recentActivity  = 7 * 24 * time.Hour
	maxDashboardRow = 100
)

var (
	// LowStockThreshold existencias en o bajo este valor cuentan como stock bajo.
	LowStockThreshold = decimal.NewFromInt(10)
	// CriticalThreshold stock bajo en o bajo este valor es severidad HIGH.
	CriticalThreshold = decimal.NewFromInt(5)
)

// DashboardUseCase arma los widgets del tablero.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// Overview totales generales y actividad de los últimos 7 días.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	c, err := uc.repo.Counts(ctx, LowStockThreshold, uc.now().Add(-recentActivity))
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	return &dto.DashboardOverviewDTO{
		TotalProducts:          c.ActiveProducts,
		TotalStores:            c.ActiveStores,
		TotalInventoryQuantity: c.TotalQuantity,
		LowStockProducts:       c.LowStock,
		ZeroStockProducts:      c.ZeroStock,
		RecentOrders:           c.RecentOrders,
		RecentTransfers:        c.RecentTransfers,
		LowStockThreshold:      LowStockThreshold,
	}, nil
}

// RecentTransactions últimos count movimientos del libro.
func (uc *DashboardUseCase) RecentTransactions(ctx context.Context, count int) ([]dto.RecentTransactionDTO, error) {
	rows, err := uc.repo.RecentTransactions(ctx, clampCount(count))
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", err)
	}
	out := make([]dto.RecentTransactionDTO, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.RecentTransactionDTO{
			ID:              t.ID,
			ProductID:       t.ProductID,
			ProductCode:     t.ProductCode,
			ProductName:     t.ProductName,
			StoreID:         t.StoreID,
			StoreName:       t.StoreName,
			Type:            t.Type,
			QuantityChanged: t.QuantityChanged,
			Reason:          t.Reason,
			CreatedAt:       t.CreatedAt,
		})
	}
	return out, nil
}

// TopProducts count productos con mayor existencia total.
func (uc *DashboardUseCase) TopProducts(ctx context.Context, count int) ([]dto.TopProductDTO, error) {
	rows, err := uc.repo.TopProducts(ctx, clampCount(count))
	if err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:     p.ProductID,
			ProductCode:   p.ProductCode,
			ProductName:   p.ProductName,
			TotalQuantity: p.TotalQuantity,
			StoreCount:    p.StoreCount,
		})
	}
	return out, nil
}

// StorePerformance existencias por tienda activa.
func (uc *DashboardUseCase) StorePerformance(ctx context.Context) ([]dto.StorePerformanceDTO, error) {
	rows, err := uc.repo.StorePerformance(ctx, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard: rendimiento por tienda: %w", err)
	}
	out := make([]dto.StorePerformanceDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.StorePerformanceDTO{
			StoreID:           s.StoreID,
			StoreCode:         s.StoreCode,
			StoreName:         s.StoreName,
			IsMainWarehouse:   s.IsMainWarehouse,
			TotalProducts:     s.Products,
			TotalQuantity:     s.TotalQuantity,
			LowStockProducts:  s.LowStock,
			ZeroStockProducts: s.ZeroStock,
		})
	}
	return out, nil
}

// MonthlyTransactions movimientos de los últimos months meses (incluido el actual), en orden
// cronológico y con los meses vacíos en cero.
func (uc *DashboardUseCase) MonthlyTransactions(ctx context.Context, months int) ([]dto.MonthlyTransactionsDTO, error) {
	if months <= 0 {
		months = defaultMonths
	}
	if months > 24 {
		months = 24
	}
	now := uc.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	rows, err := uc.repo.MonthlyTransactions(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos mensuales: %w", err)
	}
	byMonth := make(map[string]repository.MonthlyMovements, len(rows))
	for _, m := range rows {
		byMonth[fmt.Sprintf("%d-%02d", m.Year, m.Month)] = m
	}

	out := make([]dto.MonthlyTransactionsDTO, 0, months)
	for i := 0; i < months; i++ {
		t := from.AddDate(0, i, 0)
		m := byMonth[fmt.Sprintf("%d-%02d", t.Year(), t.Month())]
		out = append(out, dto.MonthlyTransactionsDTO{
			Year:                   t.Year(),
			Month:                  int(t.Month()),
			Label:                  monthLabel(t),
			TransactionCount:       m.Transactions,
			TotalQuantityChanged:   m.TotalQuantity,
			PurchaseTransactions:   m.Purchases,
			SaleTransactions:       m.Sales,
			AdjustmentTransactions: m.Adjustments,
		})
	}
	return out, nil
}

// Alerts hasta 10 alertas de stock bajo y 10 de agotado, HIGH primero.
//
// Dos consultas en paralelo:
//  1. StockAlerts(0 < cantidad <= 10) → LOW_STOCK, HIGH si cantidad <= 5
//  2. StockAlerts(cantidad = 0)       → OUT_OF_STOCK, siempre HIGH
func (uc *DashboardUseCase) Alerts(ctx context.Context) ([]dto.DashboardAlertDTO, error) {
	type alertsResult struct {
		rows []*entity.InventoryView
		err  error
	}
	lowCh := make(chan alertsResult, 1)
	outCh := make(chan alertsResult, 1)

	go func() {
		rows, err := uc.repo.StockAlerts(ctx, LowStockThreshold, false, alertsPerKind)
		lowCh <- alertsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.StockAlerts(ctx, decimal.Zero, true, alertsPerKind)
		outCh <- alertsResult{rows, err}
	}()

	low := <-lowCh
	out := <-outCh
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de stock bajo: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de agotados: %w", out.err)
	}

	alerts := make([]dto.DashboardAlertDTO, 0, len(low.rows)+len(out.rows))
	for _, v := range low.rows {
		severity := dto.AlertSeverityMedium
		if v.Quantity.LessThanOrEqual(CriticalThreshold) {
			severity = dto.AlertSeverityHigh
		}
		alerts = append(alerts, alert(dto.AlertTypeLowStock, severity,
			fmt.Sprintf("%s tiene pocas existencias en %s (cantidad: %s)", v.ProductName, v.StoreName, v.Quantity), v))
	}
	for _, v := range out.rows {
		alerts = append(alerts, alert(dto.AlertTypeOutOfStock, dto.AlertSeverityHigh,
			fmt.Sprintf("%s está agotado en %s", v.ProductName, v.StoreName), v))
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity == dto.AlertSeverityHigh && alerts[j].Severity != dto.AlertSeverityHigh
	})
	return alerts, nil
}

func alert(kind, severity, message string, v *entity.InventoryView) dto.DashboardAlertDTO {
	return dto.DashboardAlertDTO{
		Type:            kind,
		Severity:        severity,
		Message:         message,
		ProductID:       v.ProductID,
		ProductCode:     v.ProductCode,
		StoreID:         v.StoreID,
		CurrentQuantity: v.Quantity,
	}
}

func clampCount(count int) int {
	if count <= 0 {
		return defaultCount
	}
	if count > maxDashboardRow {
		return maxDashboardRow
	}
	return count
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
