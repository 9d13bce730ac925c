// Package xlsx exporta el reporte de nómina y asistencia como hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/ports"
)

// Nombres de las hojas del libro.
const (
	SheetSalaries   = "Salarios"
	SheetSummary    = "Resumen"
	SheetAttendance = "Asistencia"
)

var _ ports.ReportSpreadsheetExporter = (*ExcelizeReportExporter)(nil)

// ExcelizeReportExporter implementa ports.ReportSpreadsheetExporter con excelize.
type ExcelizeReportExporter struct {
	loc *time.Location
}

// NewExcelizeReportExporter construye el exportador. Las horas se escriben en loc.
func NewExcelizeReportExporter(loc *time.Location) *ExcelizeReportExporter {
	if loc == nil {
		loc = time.Local
	}
	return &ExcelizeReportExporter{loc: loc}
}

// ExportReportXLSX genera un libro con tres hojas: salarios, resumen y asistencia.
func (e *ExcelizeReportExporter) ExportReportXLSX(_ context.Context, doc *dto.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// La hoja por defecto se renombra para no dejar una hoja vacía.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSalaries); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	salaries := [][]interface{}{{"Usuario", "Nombre", "Salario", "Días trabajados", "Estimado"}}
	for _, l := range doc.Salaries {
		salaries = append(salaries, []interface{}{
			l.Username, l.Name, l.Salary.InexactFloat64(), l.WorkedDays, l.Estimate.InexactFloat64(),
		})
	}
	salaries = append(salaries, nil, []interface{}{
		"Días laborales por mes", doc.Settings.WorkingDaysPerMonth,
	}, []interface{}{
		"Horas por día", doc.Settings.WorkingHoursPerDay,
	})
	if err := writeSheet(f, SheetSalaries, salaries, bold); err != nil {
		return nil, err
	}

	summary := [][]interface{}{{"Usuario", "Nombre", "Días registrados"}}
	for _, a := range doc.Summary.Attendance {
		summary = append(summary, []interface{}{a.Username, a.Name, a.Days})
	}
	summary = append(summary, nil,
		[]interface{}{"Permisos pendientes", doc.Summary.Leaves.Pending},
		[]interface{}{"Permisos aprobados", doc.Summary.Leaves.Approved},
		[]interface{}{"Permisos rechazados", doc.Summary.Leaves.Rejected},
	)
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	if err := writeSheet(f, SheetSummary, summary, bold); err != nil {
		return nil, err
	}

	log := [][]interface{}{{"Usuario", "Nombre", "Fecha", "Entrada", "Salida", "Horas"}}
	for _, r := range doc.Attendance {
		hours := ""
		if r.Hours != nil {
			hours = *r.Hours
		}
		log = append(log, []interface{}{
			r.Username, r.Name, r.Date, e.clock(r.CheckIn), e.clock(r.CheckOut), hours,
		})
	}
	if _, err := f.NewSheet(SheetAttendance); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	if err := writeSheet(f, SheetAttendance, log, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet escribe las filas desde A1; la primera fila es la cabecera.
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		values := r
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	return f.SetColWidth(sheet, "A", "F", 18)
}

func (e *ExcelizeReportExporter) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(e.loc).Format("15:04")
}
