package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/estimate"
	"rugops/internal/export"
	"rugops/internal/service"
)

// EstimateHandler handles estimate lifecycle endpoints.
type EstimateHandler struct {
	estimateService service.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// linePatchRequest is the body for editing an estimate line. Nil fields are
// left unchanged.
type linePatchRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Quantity    *int               `json:"quantity"`
	UnitPrice   *float64           `json:"unit_price"`
	Priority    *estimate.Priority `json:"priority"`
}

// lineUpdateResult pairs the updated estimate with parser feedback for the
// edited line.
type lineUpdateResult struct {
	Estimate *service.EstimateView  `json:"estimate"`
	Feedback []service.LineFeedback `json:"feedback,omitempty"`
}

// addLineRequest is the body for appending a manual estimate line.
type addLineRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	UnitPrice   float64           `json:"unit_price" binding:"gte=0"`
	Priority    estimate.Priority `json:"priority"`
}

// Create godoc
// @Summary      Create an estimate from a job's report
// @Description  Parses the completed inspection report into priced service lines
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      201 {object} Response{data=service.EstimateView}
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/estimate [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	view, err := h.estimateService.CreateFromReport(c.Request.Context(), service.CreateEstimateInput{
		TenantID:  tenantID,
		JobID:     jobID,
		CreatedBy: userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, view)
}

// GetByJob godoc
// @Summary      Get a job's estimate
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} Response{data=service.EstimateView}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/estimate [get]
func (h *EstimateHandler) GetByJob(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	view, err := h.estimateService.GetByJobID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Get godoc
// @Summary      Get an estimate
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Success      200 {object} Response{data=service.EstimateView}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id} [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	view, err := h.estimateService.GetByID(c.Request.Context(), tenantID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// UpdateLine godoc
// @Summary      Edit an estimate line
// @Description  Patches a line on a draft estimate; edits that diverge from the parsed original are flagged as parser feedback
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Param        lineId path string true "Line ID"
// @Param        request body linePatchRequest true "Fields to update"
// @Success      200 {object} Response{data=lineUpdateResult}
// @Failure      400 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/lines/{lineId} [put]
func (h *EstimateHandler) UpdateLine(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid line ID")
		return
	}

	var req linePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, feedback, err := h.estimateService.UpdateLine(c.Request.Context(), tenantID, estimateID, lineID, estimate.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Priority:    req.Priority,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, lineUpdateResult{Estimate: view, Feedback: feedback})
}

// AddLine godoc
// @Summary      Add an estimate line
// @Description  Appends a manually entered line to a draft estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Param        request body addLineRequest true "Line details"
// @Success      200 {object} Response{data=service.EstimateView}
// @Failure      400 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/lines [post]
func (h *EstimateHandler) AddLine(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, err := h.estimateService.AddLine(c.Request.Context(), tenantID, estimateID, estimate.ServiceItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Priority:    req.Priority,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// RemoveLine godoc
// @Summary      Remove an estimate line
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Param        lineId path string true "Line ID"
// @Success      200 {object} Response{data=service.EstimateView}
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/lines/{lineId} [delete]
func (h *EstimateHandler) RemoveLine(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid line ID")
		return
	}

	view, err := h.estimateService.RemoveLine(c.Request.Context(), tenantID, estimateID, lineID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Send godoc
// @Summary      Send an estimate to the client
// @Description  Locks the estimate, generates a portal link, and emails the client
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Success      200 {object} Response{data=service.EstimateView}
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/send [post]
func (h *EstimateHandler) Send(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	view, err := h.estimateService.Send(c.Request.Context(), tenantID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Feedback godoc
// @Summary      Review parser feedback for an estimate
// @Description  Lists lines whose edits diverged from the parsed original
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Success      200 {object} Response{data=[]service.LineFeedback}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/feedback [get]
func (h *EstimateHandler) Feedback(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	feedback, err := h.estimateService.ReviewFeedback(c.Request.Context(), tenantID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, feedback)
}

// Export godoc
// @Summary      Export an estimate as CSV
// @Tags         estimates
// @Produce      text/csv
// @Param        id path string true "Estimate ID"
// @Success      200 {string} string "CSV file"
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id}/export [get]
func (h *EstimateHandler) Export(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	view, err := h.estimateService.GetByID(c.Request.Context(), tenantID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="estimate-`+estimateID.String()+`.csv"`)
	if err := export.WriteEstimateCSV(c.Writer, view.Lines); err != nil {
		HandleError(c, err)
		return
	}
}

// Delete godoc
// @Summary      Delete a draft estimate
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Estimate ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid estimate ID")
		return
	}

	if err := h.estimateService.Delete(c.Request.Context(), tenantID, estimateID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "estimate deleted"})
}
