// Package pdf genera el informe de movimientos en PDF.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: APA Depto. Personal  │  Modo + filtro + rango      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Mov. | Tipo | Trabajador | Desc. | Cant.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: filas / cantidad / merma / stock restante         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mandu619/apa-depto-personal/internal/application/analytics"
	"github.com/mandu619/apa-depto-personal/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 238, Green: 242, Blue: 247}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportPDF implementa analytics.ReportRenderer usando Maroto v2.
type ReportPDF struct {
	title string
}

var _ analytics.ReportRenderer = (*ReportPDF)(nil)

// NewReportPDF construye el renderer. title vacío usa el nombre del departamento.
func NewReportPDF(title string) *ReportPDF {
	if title == "" {
		title = "APA Depto. Personal"
	}
	return &ReportPDF{title: title}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportPDF) Render(report *dto.ReportResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Informe de movimientos", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReportPDF) headerRow(report *dto.ReportResponse) core.Row {
	mode := "Por trabajador"
	if report.Query.Mode == dto.ReportByType {
		mode = "Por tipo de entrada"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe de asignaciones y mermas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(mode+filterLabel(report.Query.Filter), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Rango: "+rangeLabel(report.Query.From, report.Query.To), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

var columns = []column{
	{"Fecha", 1, align.Left},
	{"Mov.", 1, align.Left},
	{"Tipo entrada", 2, align.Left},
	{"Trabajador", 2, align.Left},
	{"Descripción", 3, align.Left},
	{"Cant.", 1, align.Right},
	{"Motivo", 2, align.Left},
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRows(rows []dto.ReportRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos para los filtros seleccionados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		))}
	}
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		values := []string{
			r.Date, r.Kind, r.EntryType, nonEmpty(r.Worker, "—"),
			r.Description, strconv.Itoa(r.Quantity), r.Reason,
		}
		cols := make([]core.Col, 0, len(columns))
		for j, c := range columns {
			cols = append(cols, col.New(c.size).Add(text.New(values[j], props.Text{
				Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		rw := row.New(6).Add(cols...)
		if i%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

func summaryRow(s dto.ReportSummary) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(n int) core.Component {
		return text.New(formatThousands(n), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(4).Add(
			label("Filas:"),
			label("Cantidad total:"),
			label("Total merma:"),
			label("Stock restante:"),
		),
		col.New(2).Add(
			value(s.Rows),
			value(s.TotalQuantity),
			value(s.ScrapQuantity),
			value(s.RemainingStock),
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

func filterLabel(filter string) string {
	if filter == "" {
		return ""
	}
	return ": " + filter
}

func rangeLabel(from, to string) string {
	return nonEmpty(from, "inicio") + " a " + nonEmpty(to, "hoy")
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg, s = true, s[1:]
	}
	size := len(s)
	if size <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, size+size/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (size-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
