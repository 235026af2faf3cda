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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	query := `INSERT INTO clients (id, tenant_id, full_name, email, phone, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		client.ID, client.TenantID, client.FullName, client.Email,
		client.Phone, client.Address, client.Notes,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	query := `SELECT * FROM clients WHERE tenant_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &client, query, tenantID, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Client, int, error) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if search != "" {
		where += ` AND (full_name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var clients []domain.Client
	query := fmt.Sprintf(`SELECT * FROM clients %s ORDER BY full_name ASC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &clients, query, append(args, offset, limit)...); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clients %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients SET full_name = $1, email = $2, phone = $3, address = $4, notes = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		client.FullName, client.Email, client.Phone, client.Address, client.Notes,
		client.TenantID, client.ID,
	).Scan(&client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, clientID)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
