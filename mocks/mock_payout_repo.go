package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockPayoutRepo is a mock implementation of port.PayoutRepository.
type MockPayoutRepo struct {
	mock.Mock
}

func (m *MockPayoutRepo) Create(ctx context.Context, payout *domain.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepo) GetByID(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error) {
	args := m.Called(ctx, tenantID, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *MockPayoutRepo) List(ctx context.Context, tenantID uuid.UUID, technicianID *uuid.UUID, status *domain.PayoutStatus, offset, limit int) ([]domain.Payout, int, error) {
	args := m.Called(ctx, tenantID, technicianID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payout), args.Int(1), args.Error(2)
}

func (m *MockPayoutRepo) Update(ctx context.Context, payout *domain.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepo) TechnicianEarnings(ctx context.Context, tenantID uuid.UUID) ([]domain.TechnicianEarningsRow, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TechnicianEarningsRow), args.Error(1)
}
