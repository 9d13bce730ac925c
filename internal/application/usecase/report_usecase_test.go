package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ems-api/internal/application/attendance"
	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/leave"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/infrastructure/memory"
)

type fakePDF struct{ doc *dto.ReportDocument }

func (f *fakePDF) GenerateReportPDF(_ context.Context, doc *dto.ReportDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-fake"), nil
}

type fakeXLSX struct{ doc *dto.ReportDocument }

func (f *fakeXLSX) ExportReportXLSX(_ context.Context, doc *dto.ReportDocument) ([]byte, error) {
	f.doc = doc
	return []byte("PK"), nil
}

var (
	yesterday = time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	today     = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
)

type reportFixture struct {
	uc   *usecase.ReportUseCase
	pdf  *fakePDF
	xlsx *fakeXLSX
}

// newReportFixture: jdoe trabajó ayer y hoy (8.5 h hoy), admin solo entró hoy,
// jdoe tiene un permiso pendiente.
func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	ctx := context.Background()
	kv := memory.NewKVStore()
	log := zerolog.Nop()

	dir := directory.NewDirectoryUseCase(kv, log, directory.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, dir.EnsureSeedData(ctx))

	att := attendance.NewAttendanceUseCase(kv, log, time.UTC)
	_, err := att.CheckIn(ctx, "jdoe", yesterday)
	require.NoError(t, err)
	_, err = att.CheckIn(ctx, "jdoe", today)
	require.NoError(t, err)
	_, err = att.CheckOut(ctx, "jdoe", today.Add(8*time.Hour+30*time.Minute))
	require.NoError(t, err)
	_, err = att.CheckIn(ctx, "admin", today)
	require.NoError(t, err)

	lv := leave.NewLeaveUseCase(kv, log)
	_, err = lv.Apply(ctx, "jdoe", calendar.Date{Year: 2026, Month: time.March, Day: 20}, "Cita médica", today)
	require.NoError(t, err)

	settings := usecase.NewSettingsUseCase(kv, log)
	pdf, xlsx := &fakePDF{}, &fakeXLSX{}
	return reportFixture{
		uc:   usecase.NewReportUseCase(dir, att, lv, settings, pdf, xlsx, "ACME"),
		pdf:  pdf,
		xlsx: xlsx,
	}
}

func TestDashboard_Indicadores(t *testing.T) {
	f := newReportFixture(t)
	stats, err := f.uc.Dashboard(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmployees)
	assert.Equal(t, 2, stats.PresentToday)
	assert.Equal(t, 1, stats.PendingLeaves)
	assert.Equal(t, "2026-03-10", stats.Today)

	stats, err = f.uc.Dashboard(context.Background(), today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PresentToday, "nadie ha marcado entrada mañana")
}

func TestSalaries_EstimacionPorDiasTrabajados(t *testing.T) {
	f := newReportFixture(t)
	rep, err := f.uc.Salaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, rep.WorkingDaysPerMonth)
	require.Len(t, rep.Items, 2)

	assert.Equal(t, "admin", rep.Items[0].Username)
	assert.Equal(t, 1, rep.Items[0].WorkedDays)
	assert.Equal(t, "227.27", rep.Items[0].Estimate.StringFixed(2))

	assert.Equal(t, "jdoe", rep.Items[1].Username)
	assert.Equal(t, 2, rep.Items[1].WorkedDays)
	assert.Equal(t, "272.73", rep.Items[1].Estimate.StringFixed(2))
}

func TestSummary_AsistenciaYPermisos(t *testing.T) {
	f := newReportFixture(t)
	rep, err := f.uc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Attendance, 2)
	assert.Equal(t, dto.AttendanceSummaryDTO{Username: "admin", Name: "Company Admin", Days: 1}, rep.Attendance[0])
	assert.Equal(t, dto.AttendanceSummaryDTO{Username: "jdoe", Name: "John Doe", Days: 2}, rep.Attendance[1])
	assert.Equal(t, dto.LeaveTallyDTO{Pending: 1}, rep.Leaves)
}

func TestAttendanceLog_HorasSoloConSalida(t *testing.T) {
	f := newReportFixture(t)
	rows, err := f.uc.AttendanceLog(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "admin", rows[0].Username)
	assert.Nil(t, rows[0].Hours)

	assert.Equal(t, "2026-03-09", rows[1].Date)
	assert.Nil(t, rows[1].Hours)

	assert.Equal(t, "2026-03-10", rows[2].Date)
	require.NotNil(t, rows[2].Hours)
	assert.Equal(t, "8.50", *rows[2].Hours)
}

func TestExport_SoloAdmin(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.uc.ExportPDF(context.Background(), employeeSession, today)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.ExportXLSX(context.Background(), employeeSession, today)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExport_ArmaElDocumento(t *testing.T) {
	f := newReportFixture(t)

	out, err := f.uc.ExportPDF(context.Background(), adminSession, today)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	require.NotNil(t, f.pdf.doc)
	assert.Equal(t, "ACME", f.pdf.doc.CompanyName)
	assert.Len(t, f.pdf.doc.Salaries, 2)
	assert.Len(t, f.pdf.doc.Attendance, 3)
	assert.Equal(t, 22, f.pdf.doc.Settings.WorkingDaysPerMonth)

	_, err = f.uc.ExportXLSX(context.Background(), adminSession, today)
	require.NoError(t, err)
	require.NotNil(t, f.xlsx.doc)
	assert.Equal(t, 1, f.xlsx.doc.Summary.Leaves.Pending)
}

func TestExport_SinGenerador(t *testing.T) {
	kv := memory.NewKVStore()
	log := zerolog.Nop()
	uc := usecase.NewReportUseCase(
		directory.NewDirectoryUseCase(kv, log),
		attendance.NewAttendanceUseCase(kv, log, time.UTC),
		leave.NewLeaveUseCase(kv, log),
		usecase.NewSettingsUseCase(kv, log),
		nil, nil, "ACME",
	)
	_, err := uc.ExportPDF(context.Background(), adminSession, today)
	assert.ErrorIs(t, err, usecase.ErrExporterNotConfigured)
}
