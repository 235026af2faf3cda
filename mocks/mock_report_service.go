package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
	"rugops/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Request(ctx context.Context, input service.RequestReportInput) (*domain.InspectionReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportService) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportService) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportService) Retry(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionReport), args.Error(1)
}

func (m *MockReportService) Generate(ctx context.Context, report *domain.InspectionReport, maxAttempts int) {
	m.Called(ctx, report, maxAttempts)
}
