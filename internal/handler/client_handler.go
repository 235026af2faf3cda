package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/service"
)

// ClientHandler handles client (rug owner) management endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body service.CreateClientInput true "Client details"
// @Success      201 {object} Response{data=domain.Client}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	input.TenantID = tenantID

	client, err := h.clientService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, client)
}

// List godoc
// @Summary      List clients
// @Description  Lists clients, optionally filtered by a search term on name, email, or phone
// @Tags         clients
// @Produce      json
// @Param        search query string false "Search term"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} Response{data=[]domain.Client}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	search := c.Query("search")

	clients, total, err := h.clientService.List(c.Request.Context(), tenantID, search, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, clients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get godoc
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} Response{data=domain.Client}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, client)
}

// Update godoc
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID"
// @Param        request body service.UpdateClientInput true "Fields to update"
// @Success      200 {object} Response{data=domain.Client}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid client ID")
		return
	}

	var input service.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), tenantID, clientID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, client)
}

// Delete godoc
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), tenantID, clientID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "client deleted"})
}
