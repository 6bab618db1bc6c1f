// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtro     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ítems | Unidades | Valor total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALOR POR CATEGORÍA: Categoría | Valor | %                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Categoría | Cant | V.Unit | Total          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/pkg/money"
)

// Verificar en tiempo de compilación que MarotoPDFGenerator implementa ReportGenerator.
var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHeader  = &props.Color{Red: 79, Green: 70, Blue: 229}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author va a los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// InventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) InventoryReport(_ context.Context, data ports.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if data.Summary != nil {
		m.AddRows(summaryRow(data.Summary))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("VALOR POR CATEGORIA"))
		m.AddRows(categoryHeaderRow())
		m.AddRows(categoryRows(data.Summary.ByCategory)...)
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(sectionTitle("ITENS"))
	m.AddRows(itemsHeaderRow())
	if len(data.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum item encontrado.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(itemRows(data.Items)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.ReportData) core.Row {
	filter := data.Filter
	if filter == "" {
		filter = "Todos os itens"
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(filter, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(s *dto.DashboardSummaryDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		kpi("ITENS", strconv.Itoa(s.ItemCount)),
		kpi("UNIDADES", strconv.Itoa(s.TotalUnits)),
		kpi("VALOR TOTAL", s.TotalValueFormatted),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func categoryHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		headerCell("Categoria", 6, align.Left),
		headerCell("Valor", 4, align.Right),
		headerCell("%", 2, align.Right),
	)
}

func categoryRows(series []dto.CategoryValueDTO) []core.Row {
	result := make([]core.Row, 0, len(series))
	for _, c := range series {
		result = append(result, row.New(6).Add(
			cell(c.Category, 6, align.Left),
			cell(c.ValueFormatted, 4, align.Right),
			cell(c.Share.StringFixed(1)+"%", 2, align.Right),
		))
	}
	return result
}

func itemsHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		headerCell("Nome", 4, align.Left),
		headerCell("Categoria", 2, align.Left),
		headerCell("Qtd.", 1, align.Center),
		headerCell("Valor unit.", 2, align.Right),
		headerCell("Total", 3, align.Right),
	)
}

// itemRows una fila por ítem; la descripción va debajo del nombre si existe.
func itemRows(items []entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		height := 7.0
		nameCol := col.New(4).Add(text.New(it.Name, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		}))
		if it.Description != "" {
			height = 11
			nameCol.Add(text.New(it.Description, props.Text{
				Size: 6.5, Top: 5.5, Left: 1, Color: colorGray,
			}))
		}
		result = append(result, row.New(height).Add(
			nameCol,
			cell(string(it.Category), 2, align.Left),
			cell(strconv.Itoa(it.Quantity), 1, align.Center),
			cell(money.FormatBRL(it.Value), 2, align.Right),
			cell(money.FormatBRL(it.TotalValue()), 3, align.Right),
		))
	}
	return result
}
