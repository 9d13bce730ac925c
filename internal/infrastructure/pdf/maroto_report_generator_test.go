package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ems-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney("0.00"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000,50", formatMoney("25000.50"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
}

func TestGenerateReportPDF(t *testing.T) {
	in := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	hours := "8.50"
	doc := &dto.ReportDocument{
		Title:       "Reporte de nómina y asistencia",
		CompanyName: "ACME",
		GeneratedAt: in,
		Settings:    dto.SettingsDTO{WorkingDaysPerMonth: 22, WorkingHoursPerDay: 8},
		Salaries: []dto.SalaryLineDTO{{
			Username: "jdoe", Name: "John Doe", Salary: decimal.NewFromInt(3000),
			WorkedDays: 1, Estimate: decimal.RequireFromString("136.36"),
		}},
		Summary: dto.SummaryReportDTO{
			Attendance: []dto.AttendanceSummaryDTO{{Username: "jdoe", Name: "John Doe", Days: 1}},
			Leaves:     dto.LeaveTallyDTO{Pending: 1},
		},
		Attendance: []dto.AttendanceLogRowDTO{
			{Username: "jdoe", Name: "John Doe", Date: "2026-03-10", CheckIn: &in, CheckOut: &out, Hours: &hours},
			{Username: "admin", Name: "Company Admin", Date: "2026-03-10", CheckIn: &in},
		},
	}

	b, err := NewMarotoReportGenerator(time.UTC).GenerateReportPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "la salida debe ser un PDF")
}
