package service

import (
	"context"

	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/port"
)

// Dashboard bundles the headline numbers for the admin dashboard.
type Dashboard struct {
	JobCounts map[domain.JobStatus]int   `json:"job_counts"`
	Revenue   []domain.RevenueSummaryRow `json:"revenue"`
}

// StatsService defines the reporting contract.
type StatsService interface {
	RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) ([]domain.RevenueSummaryRow, error)
	Dashboard(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) (*Dashboard, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) ([]domain.RevenueSummaryRow, error) {
	return s.statsRepo.RevenueSummary(ctx, tenantID, filters)
}

func (s *statsService) Dashboard(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) (*Dashboard, error) {
	counts, err := s.statsRepo.JobCountsByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.statsRepo.RevenueSummary(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		JobCounts: counts,
		Revenue:   revenue,
	}, nil
}
