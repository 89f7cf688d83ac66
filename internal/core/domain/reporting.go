package domain

import "github.com/shopspring/decimal"

// DashboardStats aggregates the invoice store for the dashboard view.
type DashboardStats struct {
	TotalInvoices int64           `json:"totalInvoices"`
	PendingReview int64           `json:"pendingReview"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}
