package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type estimateRepo struct {
	db *sqlx.DB
}

// NewEstimateRepo creates a new PostgreSQL-backed EstimateRepository.
func NewEstimateRepo(db *sqlx.DB) port.EstimateRepository {
	return &estimateRepo{db: db}
}

func (r *estimateRepo) Create(ctx context.Context, est *domain.Estimate) error {
	query := `INSERT INTO estimates (id, tenant_id, job_id, report_id, lines, original_lines, status, portal_token, sent_at, decided_at, decline_reason, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		est.ID, est.TenantID, est.JobID, est.ReportID,
		est.Lines, est.OriginalLines, est.Status, est.PortalToken,
		est.SentAt, est.DecidedAt, est.DeclineReason, est.CreatedBy,
	).Scan(&est.CreatedAt, &est.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "estimates_tenant_id_job_id_key") {
			return domain.ErrEstimateExists
		}
		return fmt.Errorf("estimateRepo.Create: %w", err)
	}
	return nil
}

func (r *estimateRepo) GetByID(ctx context.Context, tenantID, estimateID uuid.UUID) (*domain.Estimate, error) {
	var est domain.Estimate
	query := `SELECT * FROM estimates WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &est, query, tenantID, estimateID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.GetByID: %w", err)
	}
	return &est, nil
}

func (r *estimateRepo) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Estimate, error) {
	var est domain.Estimate
	query := `SELECT * FROM estimates WHERE tenant_id = $1 AND job_id = $2`
	if err := r.db.GetContext(ctx, &est, query, tenantID, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("estimateRepo.GetByJobID: %w", err)
	}
	return &est, nil
}

func (r *estimateRepo) GetByPortalToken(ctx context.Context, token string) (*domain.Estimate, error) {
	var est domain.Estimate
	query := `SELECT * FROM estimates WHERE portal_token = $1`
	if err := r.db.GetContext(ctx, &est, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidPortalToken
		}
		return nil, fmt.Errorf("estimateRepo.GetByPortalToken: %w", err)
	}
	return &est, nil
}

func (r *estimateRepo) UpdateLines(ctx context.Context, est *domain.Estimate) error {
	query := `UPDATE estimates SET lines = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query, est.Lines, est.TenantID, est.ID).Scan(&est.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("estimateRepo.UpdateLines: %w", err)
	}
	return nil
}

func (r *estimateRepo) UpdateStatus(ctx context.Context, est *domain.Estimate) error {
	query := `UPDATE estimates SET status = $1, portal_token = $2, sent_at = $3, decided_at = $4, decline_reason = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		est.Status, est.PortalToken, est.SentAt, est.DecidedAt, est.DeclineReason,
		est.TenantID, est.ID,
	).Scan(&est.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("estimateRepo.UpdateStatus: %w", err)
	}
	return nil
}

func (r *estimateRepo) Delete(ctx context.Context, tenantID, estimateID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE tenant_id = $1 AND id = $2`, tenantID, estimateID)
	if err != nil {
		return fmt.Errorf("estimateRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
