package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/estimate"
	"rugops/internal/port"
)

// PortalView is the client-facing slice of an estimate. It deliberately
// exposes no tenant internals beyond the business name.
type PortalView struct {
	BusinessName  string                 `json:"business_name"`
	ClientName    string                 `json:"client_name"`
	JobNumber     string                 `json:"job_number"`
	Status        domain.EstimateStatus  `json:"status"`
	Lines         []estimate.ServiceItem `json:"lines"`
	Total         float64                `json:"total"`
	SentAt        *time.Time             `json:"sent_at"`
	DecidedAt     *time.Time             `json:"decided_at"`
	DeclineReason string                 `json:"decline_reason,omitempty"`
}

// PortalPaymentInput is the DTO for a client-recorded payment.
type PortalPaymentInput struct {
	Amount    float64              `json:"amount" binding:"required,gt=0"`
	Method    domain.PaymentMethod `json:"method" binding:"required"`
	Reference string               `json:"reference"`
}

// PortalService defines the token-scoped client portal contract. Every
// operation authenticates by portal token alone; there is no user session.
type PortalService interface {
	View(ctx context.Context, token string) (*PortalView, error)
	Approve(ctx context.Context, token string) (*PortalView, error)
	Decline(ctx context.Context, token, reason string) (*PortalView, error)
	RecordPayment(ctx context.Context, token string, input PortalPaymentInput) (*domain.Payment, error)
}

type portalService struct {
	estimateRepo port.EstimateRepository
	jobRepo      port.JobRepository
	clientRepo   port.ClientRepository
	tenantRepo   port.TenantRepository
	paymentRepo  port.PaymentRepository
	email        port.EmailSender
	cfg          config.PortalConfig
}

// NewPortalService creates a new PortalService implementation.
func NewPortalService(
	estimateRepo port.EstimateRepository,
	jobRepo port.JobRepository,
	clientRepo port.ClientRepository,
	tenantRepo port.TenantRepository,
	paymentRepo port.PaymentRepository,
	email port.EmailSender,
	cfg config.PortalConfig,
) PortalService {
	return &portalService{
		estimateRepo: estimateRepo,
		jobRepo:      jobRepo,
		clientRepo:   clientRepo,
		tenantRepo:   tenantRepo,
		paymentRepo:  paymentRepo,
		email:        email,
		cfg:          cfg,
	}
}

// resolveToken loads the estimate behind a portal token and enforces expiry.
func (s *portalService) resolveToken(ctx context.Context, token string) (*domain.Estimate, error) {
	if token == "" {
		return nil, domain.ErrInvalidPortalToken
	}
	est, err := s.estimateRepo.GetByPortalToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if est.SentAt == nil || time.Since(*est.SentAt) > s.cfg.TokenExpiry {
		return nil, domain.ErrInvalidPortalToken
	}
	return est, nil
}

func (s *portalService) View(ctx context.Context, token string) (*PortalView, error) {
	est, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, est)
}

func (s *portalService) Approve(ctx context.Context, token string) (*PortalView, error) {
	est, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if est.Status == domain.EstimateStatusApproved || est.Status == domain.EstimateStatusDeclined {
		return nil, domain.ErrEstimateDecided
	}
	if est.Status != domain.EstimateStatusSent {
		return nil, domain.ErrEstimateNotSent
	}

	now := time.Now().UTC()
	est.Status = domain.EstimateStatusApproved
	est.DecidedAt = &now
	if err := s.estimateRepo.UpdateStatus(ctx, est); err != nil {
		return nil, err
	}

	// Approved estimate pushes the job into the approved state.
	if job, err := s.jobRepo.GetByID(ctx, est.TenantID, est.JobID); err == nil {
		if domain.CanTransition(job.Status, domain.JobStatusApproved) {
			job.Status = domain.JobStatusApproved
			if err := s.jobRepo.Update(ctx, job); err != nil {
				log.Printf("portalService.Approve: job transition failed: %v", err)
			}
		}
	}

	if err := s.sendConfirmation(ctx, est); err != nil {
		log.Printf("portalService.Approve: confirmation email failed: %v", err)
	}

	log.Printf("portalService.Approve: estimate %s approved via portal", est.ID)
	return s.buildView(ctx, est)
}

func (s *portalService) Decline(ctx context.Context, token, reason string) (*PortalView, error) {
	est, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if est.Status == domain.EstimateStatusApproved || est.Status == domain.EstimateStatusDeclined {
		return nil, domain.ErrEstimateDecided
	}
	if est.Status != domain.EstimateStatusSent {
		return nil, domain.ErrEstimateNotSent
	}

	now := time.Now().UTC()
	est.Status = domain.EstimateStatusDeclined
	est.DecidedAt = &now
	est.DeclineReason = reason
	if err := s.estimateRepo.UpdateStatus(ctx, est); err != nil {
		return nil, err
	}

	log.Printf("portalService.Decline: estimate %s declined via portal", est.ID)
	return s.buildView(ctx, est)
}

func (s *portalService) RecordPayment(ctx context.Context, token string, input PortalPaymentInput) (*domain.Payment, error) {
	est, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if est.Status != domain.EstimateStatusApproved {
		return nil, domain.ErrEstimateNotApproved
	}
	if !domain.ValidPaymentMethods[input.Method] {
		return nil, domain.ErrInvalidPaymentMethod
	}

	payment := &domain.Payment{
		ID:         uuid.New(),
		TenantID:   est.TenantID,
		JobID:      est.JobID,
		EstimateID: est.ID,
		Amount:     input.Amount,
		Method:     input.Method,
		Reference:  input.Reference,
		PaidAt:     time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.sendReceipt(ctx, est, payment); err != nil {
		log.Printf("portalService.RecordPayment: receipt email failed: %v", err)
	}

	log.Printf("portalService.RecordPayment: %.2f recorded against estimate %s", payment.Amount, est.ID)
	return payment, nil
}

func (s *portalService) buildView(ctx context.Context, est *domain.Estimate) (*PortalView, error) {
	job, err := s.jobRepo.GetByID(ctx, est.TenantID, est.JobID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, est.TenantID, job.ClientID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, est.TenantID)
	if err != nil {
		return nil, err
	}
	items, err := decodeLines(est.Lines)
	if err != nil {
		return nil, err
	}

	return &PortalView{
		BusinessName:  tenant.Name,
		ClientName:    client.FullName,
		JobNumber:     job.JobNumber,
		Status:        est.Status,
		Lines:         items,
		Total:         estimate.Total(items),
		SentAt:        est.SentAt,
		DecidedAt:     est.DecidedAt,
		DeclineReason: est.DeclineReason,
	}, nil
}

func (s *portalService) sendConfirmation(ctx context.Context, est *domain.Estimate) error {
	job, err := s.jobRepo.GetByID(ctx, est.TenantID, est.JobID)
	if err != nil {
		return err
	}
	client, err := s.clientRepo.GetByID(ctx, est.TenantID, job.ClientID)
	if err != nil {
		return err
	}
	if client.Email == "" {
		return nil
	}
	tenant, err := s.tenantRepo.GetByID(ctx, est.TenantID)
	if err != nil {
		return err
	}
	items, err := decodeLines(est.Lines)
	if err != nil {
		return err
	}

	return s.email.SendApprovalConfirmation(ctx, port.EstimateEmail{
		ToEmail:      client.Email,
		ToName:       client.FullName,
		BusinessName: tenant.Name,
		JobNumber:    job.JobNumber,
		Total:        estimate.Total(items),
	})
}

func (s *portalService) sendReceipt(ctx context.Context, est *domain.Estimate, payment *domain.Payment) error {
	job, err := s.jobRepo.GetByID(ctx, est.TenantID, est.JobID)
	if err != nil {
		return err
	}
	client, err := s.clientRepo.GetByID(ctx, est.TenantID, job.ClientID)
	if err != nil {
		return err
	}
	if client.Email == "" {
		return nil
	}
	tenant, err := s.tenantRepo.GetByID(ctx, est.TenantID)
	if err != nil {
		return err
	}

	reference := payment.Reference
	if reference == "" {
		reference = fmt.Sprintf("PAY-%s", payment.ID)
	}
	return s.email.SendPaymentReceipt(ctx, port.ReceiptEmail{
		ToEmail:      client.Email,
		ToName:       client.FullName,
		BusinessName: tenant.Name,
		JobNumber:    job.JobNumber,
		Amount:       payment.Amount,
		Reference:    reference,
	})
}
