package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rugops/internal/domain"
	"rugops/internal/service"
)

// StatsHandler handles reporting and dashboard endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Revenue godoc
// @Summary      Revenue summary
// @Description  Buckets recorded payments by period within an optional date range
// @Tags         stats
// @Produce      json
// @Param        from query string false "Range start (YYYY-MM-DD)"
// @Param        to query string false "Range end (YYYY-MM-DD)"
// @Param        granularity query string false "Bucket size" Enums(daily, weekly, monthly) default(monthly)
// @Success      200 {object} Response{data=[]domain.RevenueSummaryRow}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/stats/revenue [get]
func (h *StatsHandler) Revenue(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filters, ok := parseStatsFilters(c)
	if !ok {
		return
	}

	rows, err := h.statsService.RevenueSummary(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  Returns job counts by status plus the revenue summary
// @Tags         stats
// @Produce      json
// @Param        from query string false "Range start (YYYY-MM-DD)"
// @Param        to query string false "Range end (YYYY-MM-DD)"
// @Param        granularity query string false "Bucket size" Enums(daily, weekly, monthly) default(monthly)
// @Success      200 {object} Response{data=service.Dashboard}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filters, ok := parseStatsFilters(c)
	if !ok {
		return
	}

	dashboard, err := h.statsService.Dashboard(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

// parseStatsFilters reads the shared stats query parameters. Returns ok=false
// after writing an error response when a date is malformed.
func parseStatsFilters(c *gin.Context) (*domain.StatsFilters, bool) {
	filters := &domain.StatsFilters{
		Granularity: c.DefaultQuery("granularity", "monthly"),
	}
	switch filters.Granularity {
	case "daily", "weekly", "monthly":
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "granularity must be daily, weekly, or monthly")
		return nil, false
	}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid from date, expected YYYY-MM-DD")
			return nil, false
		}
		filters.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid to date, expected YYYY-MM-DD")
			return nil, false
		}
		filters.To = &t
	}
	return filters, true
}
