// Package pdf genera el reporte de nómina y asistencia en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONFIGURACIÓN: días/mes, horas/día                          │
//	│  SALARIOS: Empleado | Salario | Días | Estimado              │
//	│  RESUMEN: días por empleado + permisos por estado            │
//	│  ASISTENCIA: Empleado | Fecha | Entrada | Salida | Horas     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	loc *time.Location
}

// NewMarotoReportGenerator construye el generador. Las horas se muestran en loc.
func NewMarotoReportGenerator(loc *time.Location) *MarotoReportGenerator {
	if loc == nil {
		loc = time.Local
	}
	return &MarotoReportGenerator{loc: loc}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, doc *dto.ReportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, g.loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(settingsRow(doc.Settings))

	m.AddRows(sectionRow("SALARIOS ESTIMADOS"))
	m.AddRows(tableHeaderRow([]column{
		{"Empleado", 5, align.Left}, {"Salario", 3, align.Right},
		{"Días", 1, align.Center}, {"Estimado", 3, align.Right},
	}))
	m.AddRows(salaryRows(doc.Salaries)...)

	m.AddRows(sectionRow("RESUMEN DE ASISTENCIA"))
	m.AddRows(summaryRows(doc.Summary)...)

	m.AddRows(sectionRow("REGISTRO DE ASISTENCIA"))
	m.AddRows(tableHeaderRow([]column{
		{"Empleado", 4, align.Left}, {"Fecha", 2, align.Center},
		{"Entrada", 2, align.Center}, {"Salida", 2, align.Center},
		{"Horas", 2, align.Right},
	}))
	m.AddRows(attendanceRows(doc.Attendance, g.loc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y fecha de generación (der).
func headerRow(doc *dto.ReportDocument, loc *time.Location) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(doc.CompanyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+doc.GeneratedAt.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func settingsRow(s dto.SettingsDTO) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Días laborales por mes: %d   |   Horas por día: %d",
			s.WorkingDaysPerMonth, s.WorkingHoursPerDay,
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cs...)
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func salaryRows(lines []dto.SalaryLineDTO) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			cell(l.Name, 5, align.Left),
			cell("$"+formatMoney(l.Salary.StringFixed(2)), 3, align.Right),
			cell(fmt.Sprintf("%d", l.WorkedDays), 1, align.Center),
			cell("$"+formatMoney(l.Estimate.StringFixed(2)), 3, align.Right),
		))
	}
	return rows
}

func summaryRows(s dto.SummaryReportDTO) []core.Row {
	rows := make([]core.Row, 0, len(s.Attendance)+1)
	for _, a := range s.Attendance {
		rows = append(rows, row.New(6).Add(
			cell(a.Name, 9, align.Left),
			cell(fmt.Sprintf("%d días", a.Days), 3, align.Right),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Permisos: %d pendientes   |   %d aprobados   |   %d rechazados",
			s.Leaves.Pending, s.Leaves.Approved, s.Leaves.Rejected,
		), props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
	)))
	return rows
}

func attendanceRows(log []dto.AttendanceLogRowDTO, loc *time.Location) []core.Row {
	rows := make([]core.Row, 0, len(log))
	for _, r := range log {
		hours := "—"
		if r.Hours != nil {
			hours = *r.Hours
		}
		rows = append(rows, row.New(6).Add(
			cell(r.Name, 4, align.Left),
			cell(r.Date, 2, align.Center),
			cell(clock(r.CheckIn, loc), 2, align.Center),
			cell(clock(r.CheckOut, loc), 2, align.Center),
			cell(hours, 2, align.Right),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "—"
	}
	return t.In(loc).Format("15:04")
}

// formatMoney inserta puntos de miles en la parte entera y usa coma decimal.
// Ej: "25000.50" → "25.000,50", "1000000" → "1.000.000"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+1)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
