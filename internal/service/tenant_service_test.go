package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rugops/internal/domain"
	"rugops/internal/service"
	"rugops/mocks"
)

func setupTenantService() (service.TenantService, *mocks.MockTenantRepo, *mocks.MockUserRepo) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	return service.NewTenantService(tenantRepo, userRepo), tenantRepo, userRepo
}

func TestTenantService_Create_Success(t *testing.T) {
	svc, tenantRepo, userRepo := setupTenantService()
	ctx := context.Background()

	tenantRepo.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	tenant, admin, err := svc.Create(ctx, service.CreateTenantInput{
		Name:          "Heritage Rug Care",
		Slug:          "Heritage-Rug ",
		AdminEmail:    "owner@example.com",
		AdminPassword: "password123",
		AdminName:     "Jordan Blake",
	})

	require.NoError(t, err)
	assert.Equal(t, "heritage-rug", tenant.Slug)
	assert.True(t, tenant.IsActive)
	assert.Equal(t, tenant.ID, admin.TenantID)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password123")))

	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestTenantService_Create_InvalidSlug(t *testing.T) {
	svc, tenantRepo, _ := setupTenantService()
	ctx := context.Background()

	_, _, err := svc.Create(ctx, service.CreateTenantInput{
		Name:          "Heritage Rug Care",
		Slug:          "Heritage Rug Care!",
		AdminEmail:    "owner@example.com",
		AdminPassword: "password123",
		AdminName:     "Jordan Blake",
	})

	assert.Error(t, err)
	tenantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTenantService_Create_DuplicateSlug(t *testing.T) {
	svc, tenantRepo, userRepo := setupTenantService()
	ctx := context.Background()

	tenantRepo.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).
		Return(domain.ErrDuplicateTenantSlug)

	_, _, err := svc.Create(ctx, service.CreateTenantInput{
		Name:          "Heritage Rug Care",
		Slug:          "heritage",
		AdminEmail:    "owner@example.com",
		AdminPassword: "password123",
		AdminName:     "Jordan Blake",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateTenantSlug)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTenantService_Update_PartialFields(t *testing.T) {
	svc, tenantRepo, _ := setupTenantService()
	ctx := context.Background()
	tenantID := uuid.New()

	tenant := &domain.Tenant{
		ID:       tenantID,
		Name:     "Heritage Rug Care",
		Slug:     "heritage",
		IsActive: true,
	}
	tenantRepo.On("GetByID", ctx, tenantID).Return(tenant, nil)
	tenantRepo.On("Update", ctx, tenant).Return(nil)

	inactive := false
	updated, err := svc.Update(ctx, tenantID, service.UpdateTenantInput{
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Heritage Rug Care", updated.Name)
}
