package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockEstimateRepo is a mock implementation of port.EstimateRepository.
type MockEstimateRepo struct {
	mock.Mock
}

func (m *MockEstimateRepo) Create(ctx context.Context, estimate *domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepo) GetByID(ctx context.Context, tenantID, estimateID uuid.UUID) (*domain.Estimate, error) {
	args := m.Called(ctx, tenantID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Estimate, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) GetByPortalToken(ctx context.Context, token string) (*domain.Estimate, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) UpdateLines(ctx context.Context, estimate *domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepo) UpdateStatus(ctx context.Context, estimate *domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepo) Delete(ctx context.Context, tenantID, estimateID uuid.UUID) error {
	args := m.Called(ctx, tenantID, estimateID)
	return args.Error(0)
}
