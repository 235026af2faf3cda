package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockServiceRateRepo is a mock implementation of port.ServiceRateRepository.
type MockServiceRateRepo struct {
	mock.Mock
}

func (m *MockServiceRateRepo) Upsert(ctx context.Context, rate *domain.ServiceRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockServiceRateRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ServiceRate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRate), args.Error(1)
}
