package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *domain.InspectionReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportRepo) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.InspectionReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InspectionReport), args.Error(1)
}

func (m *MockReportRepo) UpdateResult(ctx context.Context, report *domain.InspectionReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepo) Requeue(ctx context.Context, reportID uuid.UUID) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}
