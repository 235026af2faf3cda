package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/port"
)

// CreatePayoutInput is the DTO for recording a technician payout.
type CreatePayoutInput struct {
	TenantID     uuid.UUID
	TechnicianID uuid.UUID `json:"technician_id" binding:"required"`
	JobID        uuid.UUID `json:"job_id" binding:"required"`
	Amount       float64   `json:"amount" binding:"required,gt=0"`
	Notes        string    `json:"notes"`
	CreatedBy    uuid.UUID
}

// PayoutService defines the technician payout contract.
type PayoutService interface {
	Create(ctx context.Context, input CreatePayoutInput) (*domain.Payout, error)
	GetByID(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error)
	List(ctx context.Context, tenantID uuid.UUID, technicianID *uuid.UUID, status *domain.PayoutStatus, offset, limit int) ([]domain.Payout, int, error)
	MarkPaid(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error)
	Earnings(ctx context.Context, tenantID uuid.UUID) ([]domain.TechnicianEarningsRow, error)
}

type payoutService struct {
	payoutRepo port.PayoutRepository
	userRepo   port.UserRepository
	jobRepo    port.JobRepository
}

// NewPayoutService creates a new PayoutService implementation.
func NewPayoutService(payoutRepo port.PayoutRepository, userRepo port.UserRepository, jobRepo port.JobRepository) PayoutService {
	return &payoutService{
		payoutRepo: payoutRepo,
		userRepo:   userRepo,
		jobRepo:    jobRepo,
	}
}

func (s *payoutService) Create(ctx context.Context, input CreatePayoutInput) (*domain.Payout, error) {
	tech, err := s.userRepo.GetByID(ctx, input.TenantID, input.TechnicianID)
	if err != nil {
		return nil, err
	}
	if tech.Role != domain.RoleTechnician {
		return nil, domain.ErrForbidden
	}
	if _, err := s.jobRepo.GetByID(ctx, input.TenantID, input.JobID); err != nil {
		return nil, err
	}

	payout := &domain.Payout{
		ID:           uuid.New(),
		TenantID:     input.TenantID,
		TechnicianID: input.TechnicianID,
		JobID:        input.JobID,
		Amount:       input.Amount,
		Status:       domain.PayoutStatusPending,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		return nil, err
	}

	log.Printf("payoutService.Create: payout %.2f recorded for technician %s on job %s",
		payout.Amount, payout.TechnicianID, payout.JobID)
	return payout, nil
}

func (s *payoutService) GetByID(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error) {
	return s.payoutRepo.GetByID(ctx, tenantID, payoutID)
}

func (s *payoutService) List(ctx context.Context, tenantID uuid.UUID, technicianID *uuid.UUID, status *domain.PayoutStatus, offset, limit int) ([]domain.Payout, int, error) {
	return s.payoutRepo.List(ctx, tenantID, technicianID, status, offset, limit)
}

func (s *payoutService) MarkPaid(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error) {
	payout, err := s.payoutRepo.GetByID(ctx, tenantID, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return nil, domain.ErrPayoutAlreadyPaid
	}

	now := time.Now().UTC()
	payout.Status = domain.PayoutStatusPaid
	payout.PaidAt = &now
	if err := s.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

func (s *payoutService) Earnings(ctx context.Context, tenantID uuid.UUID) ([]domain.TechnicianEarningsRow, error) {
	return s.payoutRepo.TechnicianEarnings(ctx, tenantID)
}
