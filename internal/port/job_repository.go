package port

import (
	"context"

	"github.com/google/uuid"

	"rugops/internal/domain"
)

// JobRepository defines the contract for job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, status *domain.JobStatus, clientID, technicianID *uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, job *domain.Job) error
	NextJobNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

// RugRepository defines the contract for rug persistence.
type RugRepository interface {
	Create(ctx context.Context, rug *domain.Rug) error
	GetByID(ctx context.Context, tenantID, rugID uuid.UUID) (*domain.Rug, error)
	ListByJob(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Rug, error)
	Update(ctx context.Context, rug *domain.Rug) error
	Delete(ctx context.Context, tenantID, rugID uuid.UUID) error
}
