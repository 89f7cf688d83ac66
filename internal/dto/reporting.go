package dto

import (
	"invoice-reconciler/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse is the dashboard aggregate payload.
type DashboardStatsResponse struct {
	TotalInvoices int64           `json:"totalInvoices"`
	PendingReview int64           `json:"pendingReview"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// ToDashboardStatsResponse converts domain stats to the response DTO.
func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalInvoices: s.TotalInvoices,
		PendingReview: s.PendingReview,
		TotalValue:    s.TotalValue,
	}
}
