package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rugops/internal/service"
)

// PortalHandler handles the public, token-scoped client portal endpoints.
// No JWT auth applies here; the portal token is the sole credential.
type PortalHandler struct {
	portalService service.PortalService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(portalService service.PortalService) *PortalHandler {
	return &PortalHandler{portalService: portalService}
}

// declineRequest is the body for declining an estimate.
type declineRequest struct {
	Reason string `json:"reason"`
}

// View godoc
// @Summary      View an estimate via portal link
// @Tags         portal
// @Produce      json
// @Param        token path string true "Portal token"
// @Success      200 {object} Response{data=service.PortalView}
// @Failure      401 {object} ErrorResponseBody
// @Router       /api/v1/portal/{token} [get]
func (h *PortalHandler) View(c *gin.Context) {
	view, err := h.portalService.View(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Approve godoc
// @Summary      Approve an estimate
// @Tags         portal
// @Produce      json
// @Param        token path string true "Portal token"
// @Success      200 {object} Response{data=service.PortalView}
// @Failure      401 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Router       /api/v1/portal/{token}/approve [post]
func (h *PortalHandler) Approve(c *gin.Context) {
	view, err := h.portalService.Approve(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Decline godoc
// @Summary      Decline an estimate
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        token path string true "Portal token"
// @Param        request body declineRequest false "Decline reason"
// @Success      200 {object} Response{data=service.PortalView}
// @Failure      401 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Router       /api/v1/portal/{token}/decline [post]
func (h *PortalHandler) Decline(c *gin.Context) {
	var req declineRequest
	// Body is optional; a bare decline carries no reason.
	_ = c.ShouldBindJSON(&req)

	view, err := h.portalService.Decline(c.Request.Context(), c.Param("token"), req.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Records a client payment against an approved estimate and emails a receipt
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        token path string true "Portal token"
// @Param        request body service.PortalPaymentInput true "Payment details"
// @Success      201 {object} Response{data=domain.Payment}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Router       /api/v1/portal/{token}/payments [post]
func (h *PortalHandler) RecordPayment(c *gin.Context) {
	var input service.PortalPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	payment, err := h.portalService.RecordPayment(c.Request.Context(), c.Param("token"), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, payment)
}
