package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockRugRepo is a mock implementation of port.RugRepository.
type MockRugRepo struct {
	mock.Mock
}

func (m *MockRugRepo) Create(ctx context.Context, rug *domain.Rug) error {
	args := m.Called(ctx, rug)
	return args.Error(0)
}

func (m *MockRugRepo) GetByID(ctx context.Context, tenantID, rugID uuid.UUID) (*domain.Rug, error) {
	args := m.Called(ctx, tenantID, rugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rug), args.Error(1)
}

func (m *MockRugRepo) ListByJob(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Rug, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rug), args.Error(1)
}

func (m *MockRugRepo) Update(ctx context.Context, rug *domain.Rug) error {
	args := m.Called(ctx, rug)
	return args.Error(0)
}

func (m *MockRugRepo) Delete(ctx context.Context, tenantID, rugID uuid.UUID) error {
	args := m.Called(ctx, tenantID, rugID)
	return args.Error(0)
}
