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

type rugRepo struct {
	db *sqlx.DB
}

// NewRugRepo creates a new PostgreSQL-backed RugRepository.
func NewRugRepo(db *sqlx.DB) port.RugRepository {
	return &rugRepo{db: db}
}

func (r *rugRepo) Create(ctx context.Context, rug *domain.Rug) error {
	query := `INSERT INTO rugs (id, tenant_id, job_id, label, rug_type, width_ft, length_ft, condition, photo_file_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		rug.ID, rug.TenantID, rug.JobID, rug.Label, rug.RugType,
		rug.WidthFt, rug.LengthFt, rug.Condition, rug.PhotoFileID,
	).Scan(&rug.CreatedAt, &rug.UpdatedAt)
	if err != nil {
		return fmt.Errorf("rugRepo.Create: %w", err)
	}
	return nil
}

func (r *rugRepo) GetByID(ctx context.Context, tenantID, rugID uuid.UUID) (*domain.Rug, error) {
	var rug domain.Rug
	query := `SELECT * FROM rugs WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &rug, query, tenantID, rugID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rugRepo.GetByID: %w", err)
	}
	return &rug, nil
}

func (r *rugRepo) ListByJob(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Rug, error) {
	var rugs []domain.Rug
	query := `SELECT * FROM rugs WHERE tenant_id = $1 AND job_id = $2 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rugs, query, tenantID, jobID); err != nil {
		return nil, fmt.Errorf("rugRepo.ListByJob: %w", err)
	}
	return rugs, nil
}

func (r *rugRepo) Update(ctx context.Context, rug *domain.Rug) error {
	query := `UPDATE rugs SET label = $1, rug_type = $2, width_ft = $3, length_ft = $4, condition = $5, photo_file_id = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		rug.Label, rug.RugType, rug.WidthFt, rug.LengthFt, rug.Condition,
		rug.PhotoFileID, rug.TenantID, rug.ID,
	).Scan(&rug.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("rugRepo.Update: %w", err)
	}
	return nil
}

func (r *rugRepo) Delete(ctx context.Context, tenantID, rugID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rugs WHERE tenant_id = $1 AND id = $2`, tenantID, rugID)
	if err != nil {
		return fmt.Errorf("rugRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
