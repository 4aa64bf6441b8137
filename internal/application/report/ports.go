package report

import (
	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// PDFGenerator renders the report payload as a PDF document.
type PDFGenerator interface {
	Render(report *dto.PlanReport, plan *entity.Plan) ([]byte, error)
}

// ExcelGenerator renders the report payload as an XLSX workbook.
type ExcelGenerator interface {
	Render(report *dto.PlanReport, plan *entity.Plan) ([]byte, error)
}
