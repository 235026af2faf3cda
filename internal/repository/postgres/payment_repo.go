package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	query := `INSERT INTO payments (id, tenant_id, job_id, estimate_id, amount, method, reference, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at`
	err := r.db.QueryRowxContext(ctx, query,
		payment.ID, payment.TenantID, payment.JobID, payment.EstimateID,
		payment.Amount, payment.Method, payment.Reference, payment.PaidAt,
	).Scan(&payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListByJob(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `SELECT * FROM payments WHERE tenant_id = $1 AND job_id = $2 ORDER BY paid_at ASC`
	if err := r.db.SelectContext(ctx, &payments, query, tenantID, jobID); err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByJob: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) ListByEstimate(ctx context.Context, tenantID, estimateID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `SELECT * FROM payments WHERE tenant_id = $1 AND estimate_id = $2 ORDER BY paid_at ASC`
	if err := r.db.SelectContext(ctx, &payments, query, tenantID, estimateID); err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByEstimate: %w", err)
	}
	return payments, nil
}
