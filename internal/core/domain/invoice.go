package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the review-workflow state of an invoice.
type InvoiceStatus string

const (
	StatusPending  InvoiceStatus = "pending"
	StatusReview   InvoiceStatus = "review"
	StatusApproved InvoiceStatus = "approved"
	StatusRejected InvoiceStatus = "rejected"
)

// IsValid reports whether s is one of the known workflow states.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Fallback values substituted when a field cascade finds nothing in the OCR
// text. Duplicate sentinel invoice numbers are expected and not deduplicated.
const (
	UnknownInvoiceNumber = "UNKNOWN"
	UnknownVendor        = "Unknown Vendor"
	DefaultCurrency      = "GBP"
)

// Invoice represents a stored invoice record produced by ingestion.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Vendor        string          `json:"vendor"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Description   string          `json:"description,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Confidence    float64         `json:"confidence"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
