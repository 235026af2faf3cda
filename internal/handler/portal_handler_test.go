package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
	"rugops/internal/handler"
	"rugops/internal/service"
	"rugops/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupPortalRouter(portalSvc service.PortalService) *gin.Engine {
	h := handler.NewPortalHandler(portalSvc)
	r := gin.New()
	portal := r.Group("/api/v1/portal")
	{
		portal.GET("/:token", h.View)
		portal.POST("/:token/approve", h.Approve)
		portal.POST("/:token/decline", h.Decline)
		portal.POST("/:token/payments", h.RecordPayment)
	}
	return r
}

func TestPortalHandler_View_Success(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	view := &service.PortalView{
		BusinessName: "Heritage Rug Care",
		ClientName:   "Pat Doyle",
		JobNumber:    "RC-2026-0005",
		Status:       domain.EstimateStatusSent,
		Total:        250,
	}
	portalSvc.On("View", mock.Anything, "tok-123").Return(view, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/portal/tok-123", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    service.PortalView `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Heritage Rug Care", resp.Data.BusinessName)
	assert.Equal(t, 250.0, resp.Data.Total)
}

func TestPortalHandler_View_InvalidToken(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	portalSvc.On("View", mock.Anything, "bad-token").Return(nil, domain.ErrInvalidPortalToken)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/portal/bad-token", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortalHandler_Decline_WithoutBody(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	view := &service.PortalView{Status: domain.EstimateStatusDeclined}
	portalSvc.On("Decline", mock.Anything, "tok-123", "").Return(view, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/portal/tok-123/decline", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	portalSvc.AssertExpectations(t)
}

func TestPortalHandler_Decline_WithReason(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	view := &service.PortalView{Status: domain.EstimateStatusDeclined, DeclineReason: "too expensive"}
	portalSvc.On("Decline", mock.Anything, "tok-123", "too expensive").Return(view, nil)

	body, _ := json.Marshal(map[string]string{"reason": "too expensive"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/portal/tok-123/decline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	portalSvc.AssertExpectations(t)
}

func TestPortalHandler_RecordPayment_Success(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	payment := &domain.Payment{
		ID:     uuid.New(),
		Amount: 250,
		Method: domain.PaymentMethodCard,
	}
	portalSvc.On("RecordPayment", mock.Anything, "tok-123", mock.AnythingOfType("service.PortalPaymentInput")).
		Return(payment, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"amount": 250,
		"method": "card",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/portal/tok-123/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	portalSvc.AssertExpectations(t)
}

func TestPortalHandler_RecordPayment_MissingAmount(t *testing.T) {
	portalSvc := new(mocks.MockPortalService)
	r := setupPortalRouter(portalSvc)

	body, _ := json.Marshal(map[string]interface{}{"method": "card"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/portal/tok-123/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	portalSvc.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}
