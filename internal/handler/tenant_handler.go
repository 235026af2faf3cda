package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rugops/internal/domain"
	"rugops/internal/service"
)

// TenantHandler handles tenant provisioning and settings endpoints.
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// registeredTenant is the response payload for tenant signup.
type registeredTenant struct {
	Tenant *domain.Tenant `json:"tenant"`
	Admin  *domain.User   `json:"admin"`
}

// Register godoc
// @Summary      Register a tenant
// @Description  Provisions a new rug-cleaning business with its first admin user
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTenantInput true "Tenant details"
// @Success      201 {object} Response{data=registeredTenant}
// @Failure      400 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody
// @Router       /api/v1/tenants [post]
func (h *TenantHandler) Register(c *gin.Context) {
	var input service.CreateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	tenant, admin, err := h.tenantService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, registeredTenant{Tenant: tenant, Admin: admin})
}

// Get godoc
// @Summary      Get current tenant
// @Description  Returns the authenticated user's tenant
// @Tags         tenants
// @Produce      json
// @Success      200 {object} Response{data=domain.Tenant}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/tenant [get]
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tenant)
}

// Update godoc
// @Summary      Update current tenant
// @Description  Updates the authenticated user's tenant settings
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body service.UpdateTenantInput true "Fields to update"
// @Success      200 {object} Response{data=domain.Tenant}
// @Failure      400 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/tenant [put]
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tenant)
}
