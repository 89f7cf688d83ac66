package services

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// ReportingSvcFacade serves the dashboard aggregates.
type ReportingSvcFacade interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
