package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se indica otro.
var DefaultLowStockThreshold = decimal.NewFromInt(10)

// exportLimit máximo de filas por archivo exportado.
const exportLimit = 10000

// QueryUseCase consultas de existencias y del libro de inventario.
type QueryUseCase struct {
	invRepo  repository.InventoryRepository
	txRepo   repository.InventoryTransactionRepository
	exporter ports.SpreadsheetExporter
}

// NewQueryUseCase construye el caso de uso. exporter puede ser nil (exportación deshabilitada).
func NewQueryUseCase(invRepo repository.InventoryRepository, txRepo repository.InventoryTransactionRepository, exporter ports.SpreadsheetExporter) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, txRepo: txRepo, exporter: exporter}
}

// List existencias paginadas; respeta el alcance por categoría/producto del actor.
func (uc *QueryUseCase) List(ctx context.Context, q dto.InventoryListQuery) (*dto.InventoryListResponse, error) {
	q.DefaultPage()
	rows, total, err := uc.invRepo.List(ctx, scopedFilter(ctx, q.StoreID, q.ProductID), q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return toInventoryList(rows, q.PageRequest, total), nil
}

// Summary totales de existencias con el umbral de stock bajo indicado (<= 0 usa el valor por defecto).
func (uc *QueryUseCase) Summary(ctx context.Context, threshold decimal.Decimal) (*dto.InventorySummaryResponse, error) {
	if !threshold.IsPositive() {
		threshold = DefaultLowStockThreshold
	}
	s, err := uc.invRepo.Summary(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryResponse{
		TotalProducts:     s.TotalProducts,
		TotalStores:       s.TotalStores,
		TotalQuantity:     s.TotalQuantity,
		TotalValue:        s.TotalValue,
		LowStockItems:     s.LowStockItems,
		ZeroStockItems:    s.ZeroStockItems,
		LowStockThreshold: threshold,
	}, nil
}

// LowStock existencias en o bajo el umbral. Sin umbral compara contra el nivel de reorden de
// cada producto, y los productos sin nivel usan DefaultLowStockThreshold.
func (uc *QueryUseCase) LowStock(ctx context.Context, q dto.LowStockQuery) (*dto.InventoryListResponse, error) {
	q.DefaultPage()
	if q.Threshold != nil && q.Threshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	rows, total, err := uc.invRepo.LowStock(ctx, q.Threshold, DefaultLowStockThreshold, scopedFilter(ctx, q.StoreID, ""), q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return toInventoryList(rows, q.PageRequest, total), nil
}

// Transactions libro de inventario filtrado y paginado.
func (uc *QueryUseCase) Transactions(ctx context.Context, q dto.TransactionListQuery) (*dto.TransactionListResponse, error) {
	q.DefaultPage()
	rows, total, err := uc.txRepo.List(ctx, transactionFilter(q), q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.TransactionListResponse{
		Items: make([]dto.TransactionResponse, 0, len(rows)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, r := range rows {
		out.Items = append(out.Items, ToTransactionResponse(r))
	}
	return out, nil
}

// Reconcile compara la existencia con la suma del libro para (producto, tienda).
func (uc *QueryUseCase) Reconcile(ctx context.Context, productID, storeID string) (*dto.ReconcileResponse, error) {
	if productID == "" || storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invRepo.Get(ctx, productID, storeID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.txRepo.SumChanged(ctx, productID, storeID)
	if err != nil {
		return nil, err
	}
	diff := inv.Quantity.Sub(sum)
	return &dto.ReconcileResponse{
		ProductID:   productID,
		StoreID:     storeID,
		Quantity:    inv.Quantity,
		LedgerTotal: sum,
		Difference:  diff,
		Balanced:    diff.IsZero(),
	}, nil
}

// ExportTransactions genera un XLSX con el libro filtrado (máximo exportLimit filas).
func (uc *QueryUseCase) ExportTransactions(ctx context.Context, q dto.TransactionListQuery) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.ErrNotFound
	}
	rows, _, err := uc.txRepo.List(ctx, transactionFilter(q), exportLimit, 0)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportTransactions(rows)
}

// ExportInventory genera un XLSX con las existencias visibles para el actor.
func (uc *QueryUseCase) ExportInventory(ctx context.Context, storeID string) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.ErrNotFound
	}
	rows, _, err := uc.invRepo.List(ctx, scopedFilter(ctx, storeID, ""), exportLimit, 0)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportInventory(rows)
}

func scopedFilter(ctx context.Context, storeID, productID string) repository.InventoryFilter {
	f := repository.InventoryFilter{StoreID: storeID, ProductID: productID}
	if actor, ok := ports.ActorFrom(ctx); ok && actor.Scoped() {
		f.CategoryIDs = actor.CategoryIDs
		f.ProductIDs = actor.ProductIDs
	}
	return f
}

func transactionFilter(q dto.TransactionListQuery) repository.TransactionFilter {
	return repository.TransactionFilter{
		ProductID:  q.ProductID,
		StoreID:    q.StoreID,
		Type:       q.Type,
		OrderID:    q.OrderID,
		TransferID: q.TransferID,
		From:       q.From,
		To:         q.To,
	}
}

func toInventoryList(rows []*entity.InventoryView, page dto.PageRequest, total int) *dto.InventoryListResponse {
	out := &dto.InventoryListResponse{
		Items: make([]dto.InventoryResponse, 0, len(rows)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.InventoryResponse{
			ProductID:    r.ProductID,
			ProductCode:  r.ProductCode,
			ProductName:  r.ProductName,
			StoreID:      r.StoreID,
			StoreName:    r.StoreName,
			Quantity:     r.Quantity,
			ReorderLevel: r.ReorderLevel,
			UnitCost:     r.UnitCost,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return out
}
