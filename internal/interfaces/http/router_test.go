package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ems-api/internal/application/attendance"
	"github.com/jhoicas/ems-api/internal/application/auth"
	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/leave"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/infrastructure/memory"
	"github.com/jhoicas/ems-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ems-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/ems-api/internal/interfaces/http"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
	now *time.Time
}

// newAPI arma la app completa sobre el almacén en memoria con reloj controlado.
func newAPI(t *testing.T) *apiClient {
	t.Helper()
	kv := memory.NewKVStore()
	log := zerolog.Nop()
	clock := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	c := &apiClient{t: t, now: &clock}
	nowFn := func() time.Time { return *c.now }

	dir := directory.NewDirectoryUseCase(kv, log, directory.WithPasswordCost(bcrypt.MinCost), directory.WithClock(nowFn))
	att := attendance.NewAttendanceUseCase(kv, log, time.UTC)
	lv := leave.NewLeaveUseCase(kv, log)
	settings := usecase.NewSettingsUseCase(kv, log)
	reports := usecase.NewReportUseCase(dir, att, lv, settings,
		pdf.NewMarotoReportGenerator(time.UTC), xlsx.NewExcelizeReportExporter(time.UTC), "ACME")
	authUC := auth.NewAuthUseCase(dir, kv, log, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})

	c.app = fiber.New()
	apphttp.Router(c.app, apphttp.RouterDeps{
		AuthUC:       authUC,
		DirectoryUC:  dir,
		AttendanceUC: att,
		LeaveUC:      lv,
		SettingsUC:   settings,
		ReportUC:     reports,
		JWTSecret:    testJWTSecret,
		Now:          nowFn,
	})
	return c
}

func (c *apiClient) do(method, path, token string, body interface{}) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, out
}

func (c *apiClient) login(identifier, password, role string) string {
	c.t.Helper()
	resp, body := c.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: identifier, Password: password, Role: role})
	require.Equal(c.t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(c.t, json.Unmarshal(body, &out))
	require.NotEmpty(c.t, out.Token)
	return out.Token
}

func TestRouter_FlujoCompleto(t *testing.T) {
	api := newAPI(t)

	resp, _ := api.do(http.MethodPost, "/api/auth/demo", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "admin", Password: "admin", Role: "employee"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "rol incorrecto")

	resp, _ = api.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "admin", Password: "admin", Role: "root"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "rol fuera de oneof")

	employee := api.login("jdoe", "1234", "employee")
	admin := api.login("admin@company.com", "admin", "admin")

	// Directorio solo para admin
	resp, _ = api.do(http.MethodGet, "/api/employees", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := api.do(http.MethodGet, "/api/employees?q=JOHN", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.EmployeeListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "jdoe", list.Items[0].Username)
	assert.NotContains(t, string(body), "password")

	// Asistencia
	resp, _ = api.do(http.MethodPost, "/api/attendance/check-out", employee, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "salida sin entrada")

	resp, _ = api.do(http.MethodPost, "/api/attendance/check-in", employee, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = api.do(http.MethodPost, "/api/attendance/check-in", employee, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "ALREADY_CHECKED_IN")

	*api.now = api.now.Add(8*time.Hour + 30*time.Minute)
	resp, body = api.do(http.MethodPost, "/api/attendance/check-out", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.AttendanceRecordResponse
	require.NoError(t, json.Unmarshal(body, &rec))
	require.NotNil(t, rec.Hours)
	assert.Equal(t, "8.50", *rec.Hours)
	assert.Equal(t, "2026-03-10", rec.Date)

	resp, body = api.do(http.MethodGet, "/api/attendance/today", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var today dto.TodayAttendanceResponse
	require.NoError(t, json.Unmarshal(body, &today))
	assert.True(t, today.CheckedIn)
	assert.True(t, today.CheckedOut)

	// Permisos
	resp, _ = api.do(http.MethodPost, "/api/leaves", employee, dto.ApplyLeaveRequest{Date: "10/03/2026", Reason: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "fecha con formato inválido")

	resp, body = api.do(http.MethodPost, "/api/leaves", employee, dto.ApplyLeaveRequest{Date: "2026-03-20", Reason: "Cita médica"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var applied dto.LeaveResponse
	require.NoError(t, json.Unmarshal(body, &applied))
	assert.Equal(t, 0, applied.Index)
	assert.Equal(t, "Pending", string(applied.Status))

	resp, _ = api.do(http.MethodPost, "/api/leaves/0/approve", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = api.do(http.MethodPost, "/api/leaves/0/approve", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"Approved"`)

	resp, _ = api.do(http.MethodPost, "/api/leaves/0/reject", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "ya decidida")

	resp, _ = api.do(http.MethodPost, "/api/leaves/7/reject", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Dashboard
	resp, body = api.do(http.MethodGet, "/api/dashboard/stats", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.DashboardStatsDTO
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, dto.DashboardStatsDTO{TotalEmployees: 2, PresentToday: 1, PendingLeaves: 0, Today: "2026-03-10"}, stats)

	// Exportación
	resp, _ = api.do(http.MethodGet, "/api/reports/export.xlsx", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = api.do(http.MethodGet, "/api/reports/export.pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	// Configuración
	resp, _ = api.do(http.MethodPut, "/api/settings", employee, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 20, WorkingHoursPerDay: 8})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = api.do(http.MethodPut, "/api/settings", admin, dto.UpdateSettingsRequest{WorkingDaysPerMonth: 20, WorkingHoursPerDay: 8})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"working_days_per_month":20,"working_hours_per_day":8}`, string(body))

	resp, _ = api.do(http.MethodPost, "/api/auth/logout", admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_EmpleadosCRUD(t *testing.T) {
	api := newAPI(t)
	resp, _ := api.do(http.MethodPost, "/api/auth/demo", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	admin := api.login("admin", "admin", "admin")

	resp, body := api.do(http.MethodPost, "/api/employees", admin, map[string]interface{}{"username": "ana"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = api.do(http.MethodPost, "/api/employees", admin, map[string]interface{}{
		"username": "ana", "name": "Ana", "email": "john.doe@company.com", "salary": 1000,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "email duplicado")

	resp, body = api.do(http.MethodPost, "/api/employees", admin, map[string]interface{}{
		"username": "ana", "name": "Ana", "email": "ana@company.com", "department": "HR", "salary": 1000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// Password por defecto
	api.login("ana", "1234", "employee")

	resp, body = api.do(http.MethodPut, "/api/employees/ana", admin, map[string]interface{}{"department": "Finance"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, "Ana", updated.Name)

	resp, _ = api.do(http.MethodPut, "/api/employees/nadie", admin, map[string]interface{}{"department": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(http.MethodDelete, "/api/employees/ana", admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = api.do(http.MethodGet, "/api/employees/ana", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_SesionSeRevalidaContraDirectorio(t *testing.T) {
	api := newAPI(t)
	resp, _ := api.do(http.MethodPost, "/api/auth/demo", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	admin := api.login("admin", "admin", "admin")

	resp, body := api.do(http.MethodPost, "/api/employees", admin, map[string]interface{}{
		"username": "sofia", "name": "Sofía", "email": "sofia@company.com", "role": "admin", "salary": 3000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	sofia := api.login("sofia", "1234", "admin")

	resp, _ = api.do(http.MethodGet, "/api/employees", sofia, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Degradada: el token viejo pierde los permisos de admin.
	resp, _ = api.do(http.MethodPut, "/api/employees/sofia", admin, map[string]interface{}{"role": "employee"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = api.do(http.MethodGet, "/api/employees", sofia, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Eliminada: el token deja de servir.
	resp, _ = api.do(http.MethodDelete, "/api/employees/sofia", admin, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = api.do(http.MethodPost, "/api/attendance/check-in", sofia, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "SESSION_REVOKED")

	// El último admin no se degrada.
	resp, _ = api.do(http.MethodPut, "/api/employees/admin", admin, map[string]interface{}{"role": "employee"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
