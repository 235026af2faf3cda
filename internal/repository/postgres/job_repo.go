package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, tenant_id, client_id, job_number, status, technician_id, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		job.ID, job.TenantID, job.ClientID, job.JobNumber,
		job.Status, job.TechnicianID, job.Notes, job.CreatedBy,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT * FROM jobs WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &job, query, tenantID, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

// jobListWhere builds the WHERE clause for job listings. Placeholders are
// numbered by argument position so the clause composes with the trailing
// OFFSET/LIMIT placeholders in List.
func jobListWhere(tenantID uuid.UUID, status *domain.JobStatus, clientID, technicianID *uuid.UUID) (string, []interface{}) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if clientID != nil {
		args = append(args, *clientID)
		where += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if technicianID != nil {
		args = append(args, *technicianID)
		where += fmt.Sprintf(` AND technician_id = $%d`, len(args))
	}
	return where, args
}

func (r *jobRepo) List(ctx context.Context, tenantID uuid.UUID, status *domain.JobStatus, clientID, technicianID *uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	where, args := jobListWhere(tenantID, status, clientID, technicianID)

	var jobs []domain.Job
	query := fmt.Sprintf(`SELECT * FROM jobs %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &jobs, query, append(args, offset, limit)...); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List count: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET status = $1, technician_id = $2, notes = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		job.Status, job.TechnicianID, job.Notes, job.TenantID, job.ID,
	).Scan(&job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("jobRepo.Update: %w", err)
	}
	return nil
}

// NextJobNumber allocates the next sequential job number for a tenant, in the
// form J-YYYY-NNNN. The per-tenant counter row is locked for the duration of
// the upsert so concurrent intakes never get the same number.
func (r *jobRepo) NextJobNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	query := `INSERT INTO job_counters (tenant_id, year, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year) DO UPDATE SET counter = job_counters.counter + 1
		RETURNING counter`
	var counter int
	if err := r.db.QueryRowxContext(ctx, query, tenantID, year).Scan(&counter); err != nil {
		return "", fmt.Errorf("jobRepo.NextJobNumber: %w", err)
	}
	return formatJobNumber(year, counter), nil
}

// formatJobNumber renders a counter value as a job number. The counter is
// zero-padded to four digits but not truncated, so a tenant's 10,000th job
// in a year still gets a unique number.
func formatJobNumber(year, counter int) string {
	return fmt.Sprintf("J-%d-%04d", year, counter)
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE tenant_id = $1 AND id = $2`, tenantID, jobID)
	if err != nil {
		return fmt.Errorf("jobRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
