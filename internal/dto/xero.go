package dto

import (
	"time"

	"invoice-reconciler/internal/core/domain"
)

// AuthURLResponse carries the Xero authorization URL to the frontend.
type AuthURLResponse struct {
	AuthURL string `json:"authUrl"`
}

// XeroStatusResponse reports whether a Xero connection exists. Token material
// itself never leaves the server; only the expiry metadata does.
type XeroStatusResponse struct {
	Connected bool       `json:"connected"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ToXeroStatusResponse converts a stored token set to the status DTO.
func ToXeroStatusResponse(t *domain.XeroTokenSet) XeroStatusResponse {
	return XeroStatusResponse{
		Connected: true,
		Expiry:    &t.Expiry,
		UpdatedAt: &t.UpdatedAt,
	}
}
