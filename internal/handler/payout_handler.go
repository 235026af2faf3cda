package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/export"
	"rugops/internal/service"
)

// PayoutHandler handles technician payout endpoints.
type PayoutHandler struct {
	payoutService service.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutService service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// Create godoc
// @Summary      Record a payout
// @Description  Records a pending payout owed to a technician for a job
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        request body service.CreatePayoutInput true "Payout details"
// @Success      201 {object} Response{data=domain.Payout}
// @Failure      400 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts [post]
func (h *PayoutHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreatePayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	input.TenantID = tenantID
	input.CreatedBy = userID

	payout, err := h.payoutService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, payout)
}

// List godoc
// @Summary      List payouts
// @Tags         payouts
// @Produce      json
// @Param        technician_id query string false "Technician ID filter"
// @Param        status query string false "Payout status filter" Enums(pending, paid)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} Response{data=[]domain.Payout}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	technicianID, ok := parseOptionalUUID(c, "technician_id")
	if !ok {
		return
	}
	var status *domain.PayoutStatus
	if s := c.Query("status"); s != "" {
		ps := domain.PayoutStatus(s)
		if ps != domain.PayoutStatusPending && ps != domain.PayoutStatusPaid {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid payout status")
			return
		}
		status = &ps
	}

	payouts, total, err := h.payoutService.List(c.Request.Context(), tenantID, technicianID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, payouts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get godoc
// @Summary      Get a payout
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID"
// @Success      200 {object} Response{data=domain.Payout}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts/{id} [get]
func (h *PayoutHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid payout ID")
		return
	}

	payout, err := h.payoutService.GetByID(c.Request.Context(), tenantID, payoutID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, payout)
}

// MarkPaid godoc
// @Summary      Mark a payout as paid
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID"
// @Success      200 {object} Response{data=domain.Payout}
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts/{id}/pay [post]
func (h *PayoutHandler) MarkPaid(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid payout ID")
		return
	}

	payout, err := h.payoutService.MarkPaid(c.Request.Context(), tenantID, payoutID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, payout)
}

// Earnings godoc
// @Summary      Technician earnings summary
// @Description  Summarizes pending and paid payout amounts per technician
// @Tags         payouts
// @Produce      json
// @Success      200 {object} Response{data=[]domain.TechnicianEarningsRow}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts/earnings [get]
func (h *PayoutHandler) Earnings(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	rows, err := h.payoutService.Earnings(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// ExportEarnings godoc
// @Summary      Export technician earnings as CSV
// @Tags         payouts
// @Produce      text/csv
// @Success      200 {string} string "CSV file"
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/payouts/earnings/export [get]
func (h *PayoutHandler) ExportEarnings(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	rows, err := h.payoutService.Earnings(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="technician-earnings.csv"`)
	if err := export.WriteEarningsCSV(c.Writer, rows); err != nil {
		HandleError(c, err)
		return
	}
}
