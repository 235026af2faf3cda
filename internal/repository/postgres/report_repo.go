package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.InspectionReport) error {
	query := `INSERT INTO inspection_reports (id, tenant_id, job_id, report_text, model_used, status, generate_error, generate_attempts, generated_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		report.ID, report.TenantID, report.JobID, report.ReportText,
		report.ModelUsed, report.Status, report.GenerateError,
		report.GenerateAttempts, report.GeneratedAt, report.CreatedBy,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	var report domain.InspectionReport
	query := `SELECT * FROM inspection_reports WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &report, query, tenantID, reportID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &report, nil
}

func (r *reportRepo) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error) {
	var report domain.InspectionReport
	query := `SELECT * FROM inspection_reports WHERE tenant_id = $1 AND job_id = $2 ORDER BY created_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &report, query, tenantID, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByJobID: %w", err)
	}
	return &report, nil
}

// ClaimQueued atomically flips up to limit queued reports to generating and
// returns them. SKIP LOCKED keeps concurrent workers from claiming the same
// rows.
func (r *reportRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.InspectionReport, error) {
	query := `UPDATE inspection_reports SET status = $1, generate_attempts = generate_attempts + 1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM inspection_reports
			WHERE status = $2
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`
	var reports []domain.InspectionReport
	err := r.db.SelectContext(ctx, &reports, query,
		domain.ReportStatusGenerating, domain.ReportStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ClaimQueued: %w", err)
	}
	return reports, nil
}

func (r *reportRepo) UpdateResult(ctx context.Context, report *domain.InspectionReport) error {
	query := `UPDATE inspection_reports SET report_text = $1, model_used = $2, status = $3, generate_error = $4, generated_at = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		report.ReportText, report.ModelUsed, report.Status,
		report.GenerateError, report.GeneratedAt, report.ID,
	).Scan(&report.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reportRepo.UpdateResult: %w", err)
	}
	return nil
}

func (r *reportRepo) Requeue(ctx context.Context, reportID uuid.UUID) error {
	query := `UPDATE inspection_reports SET status = $1, generate_error = '', updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, domain.ReportStatusQueued, reportID)
	if err != nil {
		return fmt.Errorf("reportRepo.Requeue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
