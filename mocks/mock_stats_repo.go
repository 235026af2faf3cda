package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) ([]domain.RevenueSummaryRow, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueSummaryRow), args.Error(1)
}

func (m *MockStatsRepo) JobCountsByStatus(ctx context.Context, tenantID uuid.UUID) (map[domain.JobStatus]int, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.JobStatus]int), args.Error(1)
}
