package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rugops/internal/domain"
	"rugops/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

// dateTruncExpr returns the PostgreSQL date_trunc expression for the given granularity.
func dateTruncExpr(granularity string) string {
	switch granularity {
	case "daily":
		return "date_trunc('day', p.paid_at)"
	case "weekly":
		return "date_trunc('week', p.paid_at)"
	case "monthly":
		return "date_trunc('month', p.paid_at)"
	case "quarterly":
		return "date_trunc('quarter', p.paid_at)"
	case "yearly":
		return "date_trunc('year', p.paid_at)"
	default:
		return "date_trunc('month', p.paid_at)"
	}
}

// formatPeriod formats a time.Time into a human-readable period label based on granularity.
func formatPeriod(t time.Time, granularity string) string {
	switch granularity {
	case "daily":
		return t.Format("2006-01-02")
	case "weekly":
		_, week := t.ISOWeek()
		return fmt.Sprintf("%s-W%02d", t.Format("2006"), week)
	case "monthly":
		return t.Format("2006-01")
	case "quarterly":
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%s-Q%d", t.Format("2006"), quarter)
	case "yearly":
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// periodEnd computes the end of a period given its start and the granularity.
func periodEnd(start time.Time, granularity string) time.Time {
	switch granularity {
	case "daily":
		return start.AddDate(0, 0, 1).Add(-time.Second)
	case "weekly":
		return start.AddDate(0, 0, 7).Add(-time.Second)
	case "monthly":
		return start.AddDate(0, 1, 0).Add(-time.Second)
	case "quarterly":
		return start.AddDate(0, 3, 0).Add(-time.Second)
	case "yearly":
		return start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		return start.AddDate(0, 1, 0).Add(-time.Second)
	}
}

func (r *statsRepo) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.StatsFilters) ([]domain.RevenueSummaryRow, error) {
	args := []interface{}{tenantID}
	whereClause := "WHERE p.tenant_id = $1"
	if filters.From != nil {
		args = append(args, *filters.From)
		whereClause += fmt.Sprintf(" AND p.paid_at >= $%d", len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		whereClause += fmt.Sprintf(" AND p.paid_at <= $%d", len(args))
	}

	query := fmt.Sprintf(`SELECT
		%s AS period_start,
		COUNT(*) AS payment_count,
		COALESCE(SUM(p.amount), 0) AS total_amount
	FROM payments p
	%s
	GROUP BY period_start
	ORDER BY period_start ASC`, dateTruncExpr(filters.Granularity), whereClause)

	var rows []domain.RevenueSummaryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.RevenueSummary: %w", err)
	}

	granularity := filters.Granularity
	if granularity == "" {
		granularity = "monthly"
	}
	for i := range rows {
		rows[i].Period = formatPeriod(rows[i].PeriodStart, granularity)
		rows[i].PeriodEnd = periodEnd(rows[i].PeriodStart, granularity)
	}

	return rows, nil
}

func (r *statsRepo) JobCountsByStatus(ctx context.Context, tenantID uuid.UUID) (map[domain.JobStatus]int, error) {
	var rows []struct {
		Status domain.JobStatus `db:"status"`
		Count  int              `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM jobs WHERE tenant_id = $1 GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("statsRepo.JobCountsByStatus: %w", err)
	}

	counts := make(map[domain.JobStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
