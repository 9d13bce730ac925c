package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/infrastructure/xlsx"
)

func TestExportReportXLSX_TresHojas(t *testing.T) {
	in := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	hours := "8.50"
	doc := &dto.ReportDocument{
		Title:       "Reporte",
		CompanyName: "ACME",
		GeneratedAt: in,
		Settings:    dto.SettingsDTO{WorkingDaysPerMonth: 22, WorkingHoursPerDay: 8},
		Salaries: []dto.SalaryLineDTO{{
			Username: "jdoe", Name: "John Doe", Salary: decimal.NewFromInt(3000),
			WorkedDays: 1, Estimate: decimal.RequireFromString("136.36"),
		}},
		Summary: dto.SummaryReportDTO{
			Attendance: []dto.AttendanceSummaryDTO{{Username: "jdoe", Name: "John Doe", Days: 1}},
			Leaves:     dto.LeaveTallyDTO{Approved: 2},
		},
		Attendance: []dto.AttendanceLogRowDTO{
			{Username: "jdoe", Name: "John Doe", Date: "2026-03-10", CheckIn: &in, CheckOut: &out, Hours: &hours},
		},
	}

	b, err := xlsx.NewExcelizeReportExporter(time.UTC).ExportReportXLSX(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{xlsx.SheetSalaries, xlsx.SheetSummary, xlsx.SheetAttendance}, f.GetSheetList())

	name, err := f.GetCellValue(xlsx.SheetSalaries, "B2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)

	approved, err := f.GetCellValue(xlsx.SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "2", approved)

	rows, err := f.GetRows(xlsx.SheetAttendance)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"jdoe", "John Doe", "2026-03-10", "09:00", "17:30", "8.50"}, rows[1])
}
