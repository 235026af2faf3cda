package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rugops/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEstimateReady(ctx context.Context, msg port.EstimateEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEmailSender) SendApprovalConfirmation(ctx context.Context, msg port.EstimateEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEmailSender) SendPaymentReceipt(ctx context.Context, msg port.ReceiptEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
