// Package export genera hojas de cálculo XLSX con excelize.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

var _ ports.SpreadsheetExporter = (*ExcelExporter)(nil)

// ExcelExporter implementa ports.SpreadsheetExporter.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportTransactions una fila por movimiento del libro.
func (ExcelExporter) ExportTransactions(rows []*entity.InventoryTransaction) ([]byte, error) {
	header := []any{"fecha", "tipo", "producto_id", "tienda_id", "cambio", "antes", "después", "costo_unitario", "motivo", "orden_id", "traslado_id", "usuario_id"}
	data := make([][]any, 0, len(rows))
	for _, t := range rows {
		data = append(data, []any{
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Type,
			t.ProductID,
			t.StoreID,
			t.QuantityChanged.InexactFloat64(),
			t.QuantityBefore.InexactFloat64(),
			t.QuantityAfter.InexactFloat64(),
			t.UnitCost.InexactFloat64(),
			t.Reason,
			t.OrderID,
			t.TransferID,
			t.CreatedBy,
		})
	}
	return write("Movimientos", header, data)
}

// ExportInventory existencias con valorización a costo promedio.
func (ExcelExporter) ExportInventory(rows []*entity.InventoryView) ([]byte, error) {
	header := []any{"código", "producto", "tienda", "cantidad", "nivel_reorden", "costo_unitario", "valor"}
	data := make([][]any, 0, len(rows))
	for _, v := range rows {
		data = append(data, []any{
			v.ProductCode,
			v.ProductName,
			v.StoreName,
			v.Quantity.InexactFloat64(),
			v.ReorderLevel.InexactFloat64(),
			v.UnitCost.InexactFloat64(),
			v.Quantity.Mul(v.UnitCost).InexactFloat64(),
		})
	}
	return write("Inventario", header, data)
}

func write(sheetName string, header []any, data [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, bold)
	}
	for i, r := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: celda: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("export: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
