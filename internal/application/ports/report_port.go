package ports

import (
	"context"

	"github.com/jhoicas/ems-api/internal/application/dto"
)

// ReportPDFGenerator genera la versión PDF del reporte de nómina y asistencia.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, doc *dto.ReportDocument) ([]byte, error)
}

// ReportSpreadsheetExporter genera la versión XLSX del mismo reporte.
type ReportSpreadsheetExporter interface {
	ExportReportXLSX(ctx context.Context, doc *dto.ReportDocument) ([]byte, error)
}
