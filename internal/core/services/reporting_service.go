package services

import (
	"context"
	"fmt"

	"invoice-reconciler/internal/core/domain"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"
	portssvc "invoice-reconciler/internal/core/ports/services"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.reportingRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}
