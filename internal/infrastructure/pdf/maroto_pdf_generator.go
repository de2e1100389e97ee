// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  RESUMEN: productos / unidades / valor / stock bajo / sin    │
//	│  TABLA TOP: SKU | Producto | Bodega | Stock | Estado         │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ inventory.ReportRenderer = (*ReportPDFGenerator)(nil)

// ReportPDFGenerator implementa inventory.ReportRenderer usando Maroto v2.
type ReportPDFGenerator struct {
	author string
	tag    language.Tag
}

// NewReportPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewReportPDFGenerator(author string) *ReportPDFGenerator {
	return &ReportPDFGenerator{author: author, tag: language.LatinAmericanSpanish}
}

// RenderReport genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) RenderReport(ctx context.Context, report *dto.ReportResponse) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(g.tag)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(p, report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(p, report.TopProducts)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.ReportResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRows(p *message.Printer, report *dto.ReportResponse) []core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5}),
		)
	}
	return []core.Row{
		row.New(13).Add(
			cell("Productos activos", p.Sprintf("%d", report.TotalProducts), colorPrimary),
			cell("Unidades en stock", p.Sprintf("%d", report.TotalUnits), colorPrimary),
			cell("Valor total", "$"+formatMoney(p, report.TotalValue), colorPrimary),
		),
		row.New(13).Add(
			cell("Con stock bajo", p.Sprintf("%d", report.LowStockCount), colorAlert),
			cell("Sin stock", p.Sprintf("%d", report.OutOfStockCount), colorAlert),
			col.New(4),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Bodega", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func tableRows(p *message.Printer, items []dto.InventoryItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(it.WarehouseName, "-"), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(1).Add(text.New(p.Sprintf("%d", it.Stock), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(it.StockStatus, props.Text{Size: 7, Align: align.Center, Top: 1})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Sin productos activos.", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Valor total = suma de stock x precio de productos ACTIVO. "+
			"Stock bajo incluye productos sin stock.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// formatMoney formatea con separador de miles del idioma y sin decimales si el monto es entero.
func formatMoney(p *message.Printer, d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return p.Sprintf("%d", d.IntPart())
	}
	return p.Sprintf("%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
