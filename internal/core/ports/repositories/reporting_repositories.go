package repositories

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// ReportingRepository exposes the aggregate queries behind the dashboard.
type ReportingRepository interface {
	// GetDashboardStats returns invoice count, count pending review and the
	// sum of all invoice amounts.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
