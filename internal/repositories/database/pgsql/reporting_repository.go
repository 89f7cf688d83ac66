package pgsql

import (
	"context"
	"fmt"

	"invoice-reconciler/internal/core/domain"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetDashboardStats computes the dashboard aggregates in one scan.
func (r *reportingRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_invoices,
			COUNT(*) FILTER (WHERE status = 'review') AS pending_review,
			COALESCE(SUM(amount), 0) AS total_value
		FROM invoices;
	`

	var stats domain.DashboardStats
	err := r.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalInvoices,
		&stats.PendingReview,
		&stats.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard stats: %w", err)
	}
	return &stats, nil
}
