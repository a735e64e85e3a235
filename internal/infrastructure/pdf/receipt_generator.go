// Package pdf implementa la generación del comprobante de documento en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Consecutivo + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: cliente o proveedor                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL / Pagado   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa cascade.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	businessName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre del negocio
// para el encabezado.
func NewMarotoReceiptGenerator(businessName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{businessName: businessName}
}

// GenerateReceiptPDF genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	doc *entity.Document,
	counterparty string,
	lines []cascade.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+doc.Number, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartyRow(doc, counterparty))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(lines) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(lines) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(totalsRow(doc))

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

var docTypeTitles = map[string]string{
	entity.DocTypeSale:           "COMPROBANTE DE VENTA",
	entity.DocTypePurchase:       "COMPROBANTE DE COMPRA",
	entity.DocTypeSalesReturn:    "DEVOLUCIÓN DE VENTA",
	entity.DocTypePurchaseReturn: "DEVOLUCIÓN DE COMPRA",
	entity.DocTypeExpense:        "COMPROBANTE DE GASTO",
	entity.DocTypeCapital:        "MOVIMIENTO DE CAPITAL",
	entity.DocTypeDebtSettlement: "ABONO A DEUDA",
}

// headerRow: nombre del negocio (izq) y consecutivo + fecha (der).
func headerRow(businessName string, doc *entity.Document) core.Row {
	title := docTypeTitles[doc.Type]
	if title == "" {
		title = strings.ToUpper(doc.Type)
	}
	fecha := doc.Date.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// counterpartyRow: contraparte y método de pago.
func counterpartyRow(doc *entity.Document, counterparty string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(counterparty, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New("Método de pago: "+doc.Method, props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento.
func tableDetailRows(lines []cascade.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.UnitPrice.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.Subtotal.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("Impuesto:"),
			grandLabel("TOTAL:"),
			label("Pagado:"),
			label("Pendiente:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(doc.Subtotal.StringFixed(2))),
			value("$"+formatMoney(doc.Discount.StringFixed(2))),
			value("$"+formatMoney(doc.Tax.StringFixed(2))),
			grandValue("$"+formatMoney(doc.Total.StringFixed(2))),
			value("$"+formatMoney(doc.Paid.StringFixed(2))),
			value("$"+formatMoney(doc.Remaining.StringFixed(2))),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en la parte entera de un string
// numérico. Ej: "25000.00" → "25.000,00"
func formatMoney(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(intPart) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		intPart = string(buf)
	}
	if !hasFrac {
		return intPart
	}
	return intPart + "," + fracPart
}
