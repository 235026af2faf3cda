package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rugops/internal/domain"
	"rugops/internal/service"
)

// MockPortalService is a mock implementation of service.PortalService.
type MockPortalService struct {
	mock.Mock
}

func (m *MockPortalService) View(ctx context.Context, token string) (*service.PortalView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PortalView), args.Error(1)
}

func (m *MockPortalService) Approve(ctx context.Context, token string) (*service.PortalView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PortalView), args.Error(1)
}

func (m *MockPortalService) Decline(ctx context.Context, token, reason string) (*service.PortalView, error) {
	args := m.Called(ctx, token, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PortalView), args.Error(1)
}

func (m *MockPortalService) RecordPayment(ctx context.Context, token string, input service.PortalPaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, token, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
