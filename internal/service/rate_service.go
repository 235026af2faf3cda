package service

import (
	"context"

	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/port"
)

// UpsertRateInput is the DTO for setting a default service rate.
type UpsertRateInput struct {
	TenantID  uuid.UUID
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	Unit      string  `json:"unit"`
}

// RateService defines the default service rate contract. Rates prefill
// manual estimate lines and are seeded from a price-list workbook.
type RateService interface {
	Upsert(ctx context.Context, input UpsertRateInput) (*domain.ServiceRate, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.ServiceRate, error)
}

type rateService struct {
	rateRepo port.ServiceRateRepository
}

// NewRateService creates a new RateService implementation.
func NewRateService(rateRepo port.ServiceRateRepository) RateService {
	return &rateService{rateRepo: rateRepo}
}

func (s *rateService) Upsert(ctx context.Context, input UpsertRateInput) (*domain.ServiceRate, error) {
	unit := input.Unit
	if unit == "" {
		unit = "each"
	}
	rate := &domain.ServiceRate{
		ID:        uuid.New(),
		TenantID:  input.TenantID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		Unit:      unit,
	}
	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *rateService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.ServiceRate, error) {
	return s.rateRepo.ListByTenant(ctx, tenantID)
}
