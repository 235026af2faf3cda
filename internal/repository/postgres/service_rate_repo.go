package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type serviceRateRepo struct {
	db *sqlx.DB
}

// NewServiceRateRepo creates a new PostgreSQL-backed ServiceRateRepository.
func NewServiceRateRepo(db *sqlx.DB) port.ServiceRateRepository {
	return &serviceRateRepo{db: db}
}

func (r *serviceRateRepo) Upsert(ctx context.Context, rate *domain.ServiceRate) error {
	query := `INSERT INTO service_rates (id, tenant_id, name, unit_price, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (tenant_id, name) DO UPDATE SET unit_price = EXCLUDED.unit_price, unit = EXCLUDED.unit
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		rate.ID, rate.TenantID, rate.Name, rate.UnitPrice, rate.Unit,
	).Scan(&rate.ID, &rate.CreatedAt)
	if err != nil {
		return fmt.Errorf("serviceRateRepo.Upsert: %w", err)
	}
	return nil
}

func (r *serviceRateRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ServiceRate, error) {
	var rates []domain.ServiceRate
	query := `SELECT * FROM service_rates WHERE tenant_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &rates, query, tenantID); err != nil {
		return nil, fmt.Errorf("serviceRateRepo.ListByTenant: %w", err)
	}
	return rates, nil
}
