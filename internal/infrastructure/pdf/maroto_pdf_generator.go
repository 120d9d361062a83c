// Package pdf genera el comprobante de abono de una orden.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Negocio            │  N° Pago + Fecha │
//	│  ───────────────────────────────────────────── │
//	│  CLIENTA + ORDEN: código / prenda / entrega    │
//	│  ───────────────────────────────────────────── │
//	│  ABONO: monto / medio / estado                 │
//	│  HISTORIAL: Fecha | Pago | Medio | Monto       │
//	│  ───────────────────────────────────────────── │
//	│  TOTALES: Total orden / Pagado / Saldo          │
//	│  FOOTER: QR con códigos de pago y orden        │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, data ports.ReceiptData) ([]byte, error) {
	if data.Payment == nil || data.Order == nil {
		return nil, fmt.Errorf("pdf: pago y orden son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago "+data.Payment.PaymentCode, true).
		WithAuthor(data.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paymentRow(data.Payment, data.Status))

	if len(data.History) > 0 {
		m.AddRows(historyHeaderRow())
		m.AddRows(historyRows(data.History, data.Payment.ID)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Payment))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data.Payment))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.ReceiptData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.BusinessName, "Boutique"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de abono", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(data.Payment.PaymentCode, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+data.Payment.PaymentDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func orderRow(o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("Orden: %s   |   Prenda: %s   |   Entrega: %s   |   Estado: %s",
				o.OrderCode,
				nonEmpty(o.DressType, "-"),
				o.DeliveryDate.Format(dateLayout),
				o.Status,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func paymentRow(p *entity.Payment, status entity.PaymentStatus) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("ABONO RECIBIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(formatMoney(p.AdvancePaid), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 5,
			}),
		),
		col.New(6).Add(
			text.New("Medio: "+string(p.PaymentMode), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+string(status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func historyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 3, align.Left),
		h("Pago", 3, align.Left),
		h("Medio", 3, align.Left),
		h("Monto", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// historyRows una fila por abono; el del comprobante va en negrita.
func historyRows(history []*entity.Payment, currentID string) []core.Row {
	rows := make([]core.Row, 0, len(history))
	for _, p := range history {
		style := fontstyle.Normal
		if p.ID == currentID {
			style = fontstyle.Bold
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Style: style, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		rows = append(rows, row.New(6).Add(
			cell(p.PaymentDate.Format(dateLayout), 3, align.Left),
			cell(p.PaymentCode, 3, align.Left),
			cell(string(p.PaymentMode), 3, align.Left),
			cell(formatMoney(p.AdvancePaid), 3, align.Right),
		))
	}
	return rows
}

func totalsRow(p *entity.Payment) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	paid := p.TotalOrderAmount.Sub(p.BalanceAmount)

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Total orden:"),
			label("Pagado:"),
			text.New("SALDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(formatMoney(p.TotalOrderAmount)),
			value(formatMoney(paid)),
			text.New(formatMoney(p.BalanceAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

func footerRow(p *entity.Payment) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(p.PaymentCode+"|"+p.OrderCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Conserve este comprobante.\nPresentarlo al retirar la prenda.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "$" + miles con coma y dos decimales. Ej: 12500.5 → "$12,500.50".
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String() + "." + frac
}
