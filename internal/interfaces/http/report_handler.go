package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/application/report"
	"github.com/jhoicas/bizplan-api/internal/domain"
)

// ReportHandler serves the plan report as JSON, PDF or XLSX.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Plan report payload (income statement, cost summary, segments)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Plan ID"
// @Success      200  {object}  dto.PlanReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/report [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Build(GetUserID(c), c.Params("id"))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Plan report as PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Plan ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/report.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	data, err := h.uc.RenderPDF(GetUserID(c), c.Params("id"))
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("pdf"))
	return c.Send(data)
}

// Excel godoc
// @Summary      Plan report as XLSX workbook
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Plan ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/report.xlsx [get]
func (h *ReportHandler) Excel(c *fiber.Ctx) error {
	data, err := h.uc.RenderExcel(GetUserID(c), c.Params("id"))
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment("xlsx"))
	return c.Send(data)
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="business-plan-report.%s"`, ext)
}

func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
