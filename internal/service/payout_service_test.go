package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rugops/internal/domain"
	"rugops/internal/service"
	"rugops/mocks"
)

func setupPayoutService() (service.PayoutService, *mocks.MockPayoutRepo, *mocks.MockUserRepo, *mocks.MockJobRepo) {
	payoutRepo := new(mocks.MockPayoutRepo)
	userRepo := new(mocks.MockUserRepo)
	jobRepo := new(mocks.MockJobRepo)
	return service.NewPayoutService(payoutRepo, userRepo, jobRepo), payoutRepo, userRepo, jobRepo
}

func TestPayoutService_Create_Success(t *testing.T) {
	svc, payoutRepo, userRepo, jobRepo := setupPayoutService()
	ctx := context.Background()
	tenantID := uuid.New()
	techID := uuid.New()
	jobID := uuid.New()

	userRepo.On("GetByID", ctx, tenantID, techID).Return(&domain.User{
		ID:       techID,
		TenantID: tenantID,
		Role:     domain.RoleTechnician,
		IsActive: true,
	}, nil)
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID,
	}, nil)
	payoutRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payout")).Return(nil)

	payout, err := svc.Create(ctx, service.CreatePayoutInput{
		TenantID:     tenantID,
		TechnicianID: techID,
		JobID:        jobID,
		Amount:       85.50,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusPending, payout.Status)
	assert.Equal(t, 85.50, payout.Amount)
	assert.Nil(t, payout.PaidAt)

	payoutRepo.AssertExpectations(t)
}

func TestPayoutService_Create_RejectsNonTechnician(t *testing.T) {
	svc, payoutRepo, userRepo, _ := setupPayoutService()
	ctx := context.Background()
	tenantID := uuid.New()
	adminID := uuid.New()

	userRepo.On("GetByID", ctx, tenantID, adminID).Return(&domain.User{
		ID:       adminID,
		TenantID: tenantID,
		Role:     domain.RoleAdmin,
	}, nil)

	_, err := svc.Create(ctx, service.CreatePayoutInput{
		TenantID:     tenantID,
		TechnicianID: adminID,
		JobID:        uuid.New(),
		Amount:       100,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	payoutRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPayoutService_MarkPaid_Success(t *testing.T) {
	svc, payoutRepo, _, _ := setupPayoutService()
	ctx := context.Background()
	tenantID := uuid.New()
	payoutID := uuid.New()

	payout := &domain.Payout{
		ID:       payoutID,
		TenantID: tenantID,
		Status:   domain.PayoutStatusPending,
		Amount:   60,
	}
	payoutRepo.On("GetByID", ctx, tenantID, payoutID).Return(payout, nil)
	payoutRepo.On("Update", ctx, payout).Return(nil)

	updated, err := svc.MarkPaid(ctx, tenantID, payoutID)

	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusPaid, updated.Status)
	assert.NotNil(t, updated.PaidAt)
}

func TestPayoutService_MarkPaid_AlreadyPaid(t *testing.T) {
	svc, payoutRepo, _, _ := setupPayoutService()
	ctx := context.Background()
	tenantID := uuid.New()
	payoutID := uuid.New()

	payoutRepo.On("GetByID", ctx, tenantID, payoutID).Return(&domain.Payout{
		ID:       payoutID,
		TenantID: tenantID,
		Status:   domain.PayoutStatusPaid,
	}, nil)

	_, err := svc.MarkPaid(ctx, tenantID, payoutID)

	assert.ErrorIs(t, err, domain.ErrPayoutAlreadyPaid)
	payoutRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPayoutService_Earnings(t *testing.T) {
	svc, payoutRepo, _, _ := setupPayoutService()
	ctx := context.Background()
	tenantID := uuid.New()

	rows := []domain.TechnicianEarningsRow{
		{TechnicianID: uuid.New(), TechnicianName: "Sam Reyes", JobCount: 4, PendingAmount: 120, PaidAmount: 480},
	}
	payoutRepo.On("TechnicianEarnings", ctx, tenantID).Return(rows, nil)

	got, err := svc.Earnings(ctx, tenantID)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
