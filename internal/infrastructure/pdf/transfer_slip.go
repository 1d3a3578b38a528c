// Package pdf genera el comprobante imprimible de un traslado entre tiendas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título            │  N° Traslado + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: Tienda + dirección │ DESTINO: Tienda + dirección    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant | Costo | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Valor                                   │
//	│  FIRMAS: Entrega / Recibe                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

var _ ports.TransferSlipRenderer = (*MarotoRenderer)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoRenderer implementa ports.TransferSlipRenderer con Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el generador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// RenderTransferSlip genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) RenderTransferSlip(slip ports.TransferSlip) ([]byte, error) {
	if slip.Transfer == nil {
		return nil, fmt.Errorf("pdf: traslado vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Traslado "+slip.Transfer.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip.Transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(storesRow(slip.FromStore, slip.ToStore))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(slip.Transfer.Items, slip.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(slip.Transfer))
	if slip.Transfer.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+slip.Transfer.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(row.New(15))
	m.AddRows(signatureRow(slip.Transfer.Number))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(t *entity.StoreTransfer) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("TRASLADO ENTRE TIENDAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de movimiento de mercancía", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(t.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+t.TransferDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(t.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func storesRow(from, to *entity.Store) core.Row {
	block := func(title string, s *entity.Store) core.Col {
		name, addr := "-", "-"
		if s != nil {
			name = s.Name
			addr = nonEmpty(s.Address, "-")
		}
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Dirección: "+addr, props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(block("ORIGEN", from), block("DESTINO", to))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(items []entity.StoreTransferItem, products map[string]*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		code, name := it.ProductID, it.ProductID
		if p, ok := products[it.ProductID]; ok && p != nil {
			code, name = p.Code, p.Name
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.Quantity.Mul(it.UnitCost)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(t *entity.StoreTransfer) core.Row {
	value := decimal.Zero
	for _, it := range t.Items {
		value = value.Add(it.Quantity.Mul(it.UnitCost))
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	amount := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Unidades:"), text.New("Valor:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6})),
		col.New(3).Add(amount(formatQty(t.TotalQuantity())), text.New("$"+formatMoney(value), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 6, Color: colorPrimary})),
	)
}

// signatureRow firmas de entrega y recibo, con QR del número para verificación en bodega.
func signatureRow(number string) core.Row {
	sign := func(label string) core.Col {
		return col.New(4).Add(
			text.New("______________________________", props.Text{Size: 8, Align: align.Center, Top: 10}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 15, Color: colorGray}),
		)
	}
	return row.New(30).Add(
		sign("Entrega"),
		sign("Recibe"),
		col.New(4).Add(code.NewQr(number, props.Rect{Percent: 80, Center: true})),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.TransferStatusDraft:
		return "BORRADOR"
	case entity.TransferStatusCompleted:
		return "COMPLETADO"
	case entity.TransferStatusCancelled:
		return "CANCELADO"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatQty(d decimal.Decimal) string {
	return d.String()
}

// formatMoney puntos de miles sin decimales. Ej: 25000 → "25.000".
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	if d.Round(0).IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
