package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rugops/internal/port"
)

// MockReportAnalyzer is a mock implementation of port.ReportAnalyzer.
type MockReportAnalyzer struct {
	mock.Mock
}

func (m *MockReportAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AnalyzeOutput), args.Error(1)
}
