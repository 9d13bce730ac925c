package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/usecase"
)

// ReportHandler dashboard, salarios y reportes exportables.
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, now func() time.Time) *ReportHandler {
	return &ReportHandler{uc: uc, now: now}
}

// Stats godoc
// @Summary      Indicadores del dashboard
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Salaries godoc
// @Summary      Salarios estimados
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.SalaryReportDTO
// @Router       /api/salaries [get]
func (h *ReportHandler) Salaries(c *fiber.Ctx) error {
	out, err := h.uc.Salaries(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de asistencia y permisos
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.SummaryReportDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar reporte en PDF
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	b, err := h.uc.ExportPDF(c.Context(), GetSession(c), h.now())
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte.pdf"`)
	return c.Send(b)
}

// ExportXLSX godoc
// @Summary      Exportar reporte como hoja de cálculo
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	b, err := h.uc.ExportXLSX(c.Context(), GetSession(c), h.now())
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte.xlsx"`)
	return c.Send(b)
}

func (h *ReportHandler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrExporterNotConfigured) {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "EXPORT_UNAVAILABLE", Message: err.Error()})
	}
	return writeError(c, err)
}
