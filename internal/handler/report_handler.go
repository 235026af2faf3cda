package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/service"
)

// ReportHandler handles AI inspection report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Request godoc
// @Summary      Request an inspection report
// @Description  Queues AI report generation for a job's rugs; generation runs asynchronously
// @Tags         reports
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      201 {object} Response{data=domain.InspectionReport}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/report [post]
func (h *ReportHandler) Request(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	report, err := h.reportService.Request(c.Request.Context(), service.RequestReportInput{
		TenantID:  tenantID,
		JobID:     jobID,
		CreatedBy: userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, report)
}

// GetByJob godoc
// @Summary      Get a job's latest report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} Response{data=domain.InspectionReport}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/report [get]
func (h *ReportHandler) GetByJob(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	report, err := h.reportService.GetByJobID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Get godoc
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} Response{data=domain.InspectionReport}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report ID")
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Retry godoc
// @Summary      Retry a failed report
// @Description  Requeues a report whose generation failed
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} Response{data=domain.InspectionReport}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/reports/{id}/retry [post]
func (h *ReportHandler) Retry(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report ID")
		return
	}

	report, err := h.reportService.Retry(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}
