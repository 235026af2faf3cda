package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/service"
)

// JobHandler handles job lifecycle and rug endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// transitionRequest is the body for a job status transition.
type transitionRequest struct {
	Status domain.JobStatus `json:"status" binding:"required"`
}

// Create godoc
// @Summary      Open a job
// @Description  Opens a new cleaning job for a client and allocates a job number
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        request body service.CreateJobInput true "Job details"
// @Success      201 {object} Response{data=domain.Job}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	input.TenantID = tenantID
	input.CreatedBy = userID

	job, err := h.jobService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, job)
}

// List godoc
// @Summary      List jobs
// @Description  Lists jobs with optional status, client, and technician filters
// @Tags         jobs
// @Produce      json
// @Param        status query string false "Job status filter"
// @Param        client_id query string false "Client ID filter"
// @Param        technician_id query string false "Technician ID filter"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} Response{data=[]domain.Job}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	var status *domain.JobStatus
	if s := c.Query("status"); s != "" {
		js := domain.JobStatus(s)
		if !domain.ValidJobStatuses[js] {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job status")
			return
		}
		status = &js
	}
	clientID, ok := parseOptionalUUID(c, "client_id")
	if !ok {
		return
	}
	technicianID, ok := parseOptionalUUID(c, "technician_id")
	if !ok {
		return
	}

	jobs, total, err := h.jobService.List(c.Request.Context(), tenantID, status, clientID, technicianID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} Response{data=domain.Job}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// Update godoc
// @Summary      Update a job
// @Description  Updates mutable job fields (technician assignment, notes)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        request body service.UpdateJobInput true "Fields to update"
// @Success      200 {object} Response{data=domain.Job}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	var input service.UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), tenantID, jobID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// Transition godoc
// @Summary      Transition job status
// @Description  Moves a job to the next lifecycle state; invalid transitions are rejected
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        request body transitionRequest true "Target status"
// @Success      200 {object} Response{data=domain.Job}
// @Failure      400 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/transition [post]
func (h *JobHandler) Transition(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !domain.ValidJobStatuses[req.Status] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job status")
		return
	}

	job, err := h.jobService.Transition(c.Request.Context(), tenantID, jobID, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// AddRug godoc
// @Summary      Add a rug to a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        request body service.AddRugInput true "Rug details"
// @Success      201 {object} Response{data=domain.Rug}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/rugs [post]
func (h *JobHandler) AddRug(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	var input service.AddRugInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	input.TenantID = tenantID
	input.JobID = jobID

	rug, err := h.jobService.AddRug(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rug)
}

// ListRugs godoc
// @Summary      List rugs on a job
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} Response{data=[]domain.Rug}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/rugs [get]
func (h *JobHandler) ListRugs(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job ID")
		return
	}

	rugs, err := h.jobService.ListRugs(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rugs)
}

// DeleteRug godoc
// @Summary      Remove a rug from a job
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        rugId path string true "Rug ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/jobs/{id}/rugs/{rugId} [delete]
func (h *JobHandler) DeleteRug(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	rugID, err := uuid.Parse(c.Param("rugId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid rug ID")
		return
	}

	if err := h.jobService.DeleteRug(c.Request.Context(), tenantID, rugID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "rug removed"})
}

// parseOptionalUUID reads an optional UUID query parameter. Returns ok=false
// after writing an error response when the value is present but malformed.
func parseOptionalUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+name)
		return nil, false
	}
	return &id, true
}
