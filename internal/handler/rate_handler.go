package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rugops/internal/service"
)

// RateHandler handles default service rate endpoints.
type RateHandler struct {
	rateService service.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// Upsert godoc
// @Summary      Set a service rate
// @Description  Creates or updates the tenant's default price for a named service
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        request body service.UpsertRateInput true "Rate details"
// @Success      200 {object} Response{data=domain.ServiceRate}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/rates [put]
func (h *RateHandler) Upsert(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpsertRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	input.TenantID = tenantID

	rate, err := h.rateService.Upsert(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rate)
}

// List godoc
// @Summary      List service rates
// @Tags         rates
// @Produce      json
// @Success      200 {object} Response{data=[]domain.ServiceRate}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/rates [get]
func (h *RateHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	rates, err := h.rateService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rates)
}
