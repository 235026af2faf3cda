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

type payoutRepo struct {
	db *sqlx.DB
}

// NewPayoutRepo creates a new PostgreSQL-backed PayoutRepository.
func NewPayoutRepo(db *sqlx.DB) port.PayoutRepository {
	return &payoutRepo{db: db}
}

func (r *payoutRepo) Create(ctx context.Context, payout *domain.Payout) error {
	query := `INSERT INTO payouts (id, tenant_id, technician_id, job_id, amount, status, paid_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		payout.ID, payout.TenantID, payout.TechnicianID, payout.JobID,
		payout.Amount, payout.Status, payout.PaidAt, payout.Notes, payout.CreatedBy,
	).Scan(&payout.CreatedAt, &payout.UpdatedAt)
	if err != nil {
		return fmt.Errorf("payoutRepo.Create: %w", err)
	}
	return nil
}

func (r *payoutRepo) GetByID(ctx context.Context, tenantID, payoutID uuid.UUID) (*domain.Payout, error) {
	var payout domain.Payout
	query := `SELECT * FROM payouts WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &payout, query, tenantID, payoutID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payoutRepo.GetByID: %w", err)
	}
	return &payout, nil
}

func (r *payoutRepo) List(ctx context.Context, tenantID uuid.UUID, technicianID *uuid.UUID, status *domain.PayoutStatus, offset, limit int) ([]domain.Payout, int, error) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if technicianID != nil {
		args = append(args, *technicianID)
		where += fmt.Sprintf(` AND technician_id = $%d`, len(args))
	}
	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var payouts []domain.Payout
	query := fmt.Sprintf(`SELECT * FROM payouts %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &payouts, query, append(args, offset, limit)...); err != nil {
		return nil, 0, fmt.Errorf("payoutRepo.List: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payouts %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("payoutRepo.List count: %w", err)
	}
	return payouts, total, nil
}

func (r *payoutRepo) Update(ctx context.Context, payout *domain.Payout) error {
	query := `UPDATE payouts SET amount = $1, status = $2, paid_at = $3, notes = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		payout.Amount, payout.Status, payout.PaidAt, payout.Notes,
		payout.TenantID, payout.ID,
	).Scan(&payout.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("payoutRepo.Update: %w", err)
	}
	return nil
}

func (r *payoutRepo) TechnicianEarnings(ctx context.Context, tenantID uuid.UUID) ([]domain.TechnicianEarningsRow, error) {
	query := `SELECT
			p.technician_id,
			u.full_name AS technician_name,
			COUNT(DISTINCT p.job_id) AS job_count,
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'pending'), 0) AS pending_amount,
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'paid'), 0) AS paid_amount
		FROM payouts p
		JOIN users u ON u.id = p.technician_id
		WHERE p.tenant_id = $1
		GROUP BY p.technician_id, u.full_name
		ORDER BY u.full_name ASC`
	var rows []domain.TechnicianEarningsRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("payoutRepo.TechnicianEarnings: %w", err)
	}
	return rows, nil
}
