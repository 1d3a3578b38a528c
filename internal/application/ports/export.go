package ports

import "github.com/jhoicas/Warehousing-api/internal/domain/entity"

// SpreadsheetExporter genera archivos XLSX de consultas de inventario.
type SpreadsheetExporter interface {
	ExportTransactions(rows []*entity.InventoryTransaction) ([]byte, error)
	ExportInventory(rows []*entity.InventoryView) ([]byte, error)
}

// TransferSlipRenderer genera el comprobante PDF de un traslado.
type TransferSlipRenderer interface {
	RenderTransferSlip(slip TransferSlip) ([]byte, error)
}

// TransferSlip datos resueltos (con nombres) para imprimir un traslado.
type TransferSlip struct {
	Transfer  *entity.StoreTransfer
	FromStore *entity.Store
	ToStore   *entity.Store
	Products  map[string]*entity.Product
}
