package port

import (
	"context"

	"github.com/google/uuid"

	"rugops/internal/domain"
)

// ReportRepository defines the contract for inspection report persistence.
// ClaimQueued atomically marks up to limit queued reports as generating and
// returns them, so concurrent workers never claim the same report twice.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.InspectionReport) error
	GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error)
	GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error)
	ClaimQueued(ctx context.Context, limit int) ([]domain.InspectionReport, error)
	UpdateResult(ctx context.Context, report *domain.InspectionReport) error
	Requeue(ctx context.Context, reportID uuid.UUID) error
}

// EstimateRepository defines the contract for estimate persistence.
type EstimateRepository interface {
	Create(ctx context.Context, est *domain.Estimate) error
	GetByID(ctx context.Context, tenantID, estimateID uuid.UUID) (*domain.Estimate, error)
	GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Estimate, error)
	GetByPortalToken(ctx context.Context, token string) (*domain.Estimate, error)
	UpdateLines(ctx context.Context, est *domain.Estimate) error
	UpdateStatus(ctx context.Context, est *domain.Estimate) error
	Delete(ctx context.Context, tenantID, estimateID uuid.UUID) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByJob(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Payment, error)
	ListByEstimate(ctx context.Context, tenantID, estimateID uuid.UUID) ([]domain.Payment, error)
}

// PayoutRepository defines the contract for technician payout persistence.
type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) error
	GetByID(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error)
	List(ctx context.Context, tenantID uuid.UUID, technicianID *uuid.UUID, status *domain.PayoutStatus, offset, limit int) ([]domain.Payout, int, error)
	Update(ctx context.Context, payout *domain.Payout) error
	TechnicianEarnings(ctx context.Context, tenantID uuid.UUID) ([]domain.TechnicianEarningsRow, error)
}

// ServiceRateRepository defines the contract for default service rates.
type ServiceRateRepository interface {
	Upsert(ctx context.Context, rate *domain.ServiceRate) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ServiceRate, error)
}

// StatsRepository defines the contract for dashboard reporting queries.
type StatsRepository interface {
	RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) ([]domain.RevenueSummaryRow, error)
	JobCountsByStatus(ctx context.Context, tenantID uuid.UUID) (map[domain.JobStatus]int, error)
}
