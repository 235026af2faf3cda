package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/port"
)

// CreateJobInput is the DTO for job intake.
type CreateJobInput struct {
	TenantID     uuid.UUID
	ClientID     uuid.UUID `json:"client_id" binding:"required"`
	TechnicianID *uuid.UUID
	Notes        string `json:"notes"`
	CreatedBy    uuid.UUID
}

// UpdateJobInput is the DTO for updating a job. Nil fields are unchanged.
type UpdateJobInput struct {
	TechnicianID *uuid.UUID `json:"technician_id"`
	Notes        *string    `json:"notes"`
}

// AddRugInput is the DTO for registering a rug under a job.
type AddRugInput struct {
	TenantID    uuid.UUID
	JobID       uuid.UUID
	Label       string  `json:"label" binding:"required"`
	RugType     string  `json:"rug_type"`
	WidthFt     float64 `json:"width_ft"`
	LengthFt    float64 `json:"length_ft"`
	Condition   string  `json:"condition"`
	PhotoFileID *uuid.UUID
}

// JobService defines the job lifecycle contract.
type JobService interface {
	Create(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, status *domain.JobStatus, clientID, technicianID *uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobInput) (*domain.Job, error)
	Transition(ctx context.Context, tenantID, jobID uuid.UUID, to domain.JobStatus) (*domain.Job, error)
	AddRug(ctx context.Context, input AddRugInput) (*domain.Rug, error)
	ListRugs(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Rug, error)
	DeleteRug(ctx context.Context, tenantID, rugID uuid.UUID) error
}

type jobService struct {
	jobRepo    port.JobRepository
	rugRepo    port.RugRepository
	clientRepo port.ClientRepository
}

// NewJobService creates a new JobService implementation.
func NewJobService(jobRepo port.JobRepository, rugRepo port.RugRepository, clientRepo port.ClientRepository) JobService {
	return &jobService{
		jobRepo:    jobRepo,
		rugRepo:    rugRepo,
		clientRepo: clientRepo,
	}
}

func (s *jobService) Create(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	// Verify the client belongs to this tenant before opening a job.
	if _, err := s.clientRepo.GetByID(ctx, input.TenantID, input.ClientID); err != nil {
		return nil, err
	}

	jobNumber, err := s.jobRepo.NextJobNumber(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("allocating job number: %w", err)
	}

	job := &domain.Job{
		ID:           uuid.New(),
		TenantID:     input.TenantID,
		ClientID:     input.ClientID,
		JobNumber:    jobNumber,
		Status:       domain.JobStatusReceived,
		TechnicianID: input.TechnicianID,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("jobService.Create: opened job %s for client %s", job.JobNumber, job.ClientID)
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, tenantID, jobID)
}

func (s *jobService) List(ctx context.Context, tenantID uuid.UUID, status *domain.JobStatus, clientID, technicianID *uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	return s.jobRepo.List(ctx, tenantID, status, clientID, technicianID, offset, limit)
}

func (s *jobService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobInput) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if input.TechnicianID != nil {
		job.TechnicianID = input.TechnicianID
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) Transition(ctx context.Context, tenantID, jobID uuid.UUID, to domain.JobStatus) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(job.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidJobStatus, job.Status, to)
	}
	job.Status = to
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	log.Printf("jobService.Transition: job %s moved to %s", job.JobNumber, to)
	return job, nil
}

func (s *jobService) AddRug(ctx context.Context, input AddRugInput) (*domain.Rug, error) {
	if _, err := s.jobRepo.GetByID(ctx, input.TenantID, input.JobID); err != nil {
		return nil, err
	}

	rug := &domain.Rug{
		ID:          uuid.New(),
		TenantID:    input.TenantID,
		JobID:       input.JobID,
		Label:       input.Label,
		RugType:     input.RugType,
		WidthFt:     input.WidthFt,
		LengthFt:    input.LengthFt,
		Condition:   input.Condition,
		PhotoFileID: input.PhotoFileID,
	}
	if err := s.rugRepo.Create(ctx, rug); err != nil {
		return nil, err
	}
	return rug, nil
}

func (s *jobService) ListRugs(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Rug, error) {
	return s.rugRepo.ListByJob(ctx, tenantID, jobID)
}

func (s *jobService) DeleteRug(ctx context.Context, tenantID, rugID uuid.UUID) error {
	return s.rugRepo.Delete(ctx, tenantID, rugID)
}
