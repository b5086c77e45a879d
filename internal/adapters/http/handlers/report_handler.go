package handlers

import (
	"errors"

	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler handles moderation reports
type ReportHandler struct {
	reportService *services.ReportService
	log           *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		log:           log,
	}
}

// Create handles filing a report
// @Summary Report a user
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReportInput true "Report"
// @Success 201 {object} response.Response{data=domain.Report}
// @Failure 400 {object} response.Response
// @Router /report/report [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReportInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	report, err := h.reportService.Create(c.UserContext(), caller(c), &input)
	if err != nil {
		return serverError(c, h.log, "Failed to submit report", err)
	}

	return response.Created(c, "Report submitted successfully", report)
}

// List handles listing reports
// @Summary List reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]domain.Report}
// @Router /report/report [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reportService.List(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list reports", err)
	}

	return response.Success(c, "Reports retrieved successfully", reports)
}

// Delete handles dismissing a report
// @Summary Delete report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /report/report/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.reportService.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return response.NotFound(c, "Report not found")
		}
		return serverError(c, h.log, "Failed to delete report", err)
	}

	return response.Success(c, "Report deleted successfully", nil)
}
