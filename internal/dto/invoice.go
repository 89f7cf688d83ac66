package dto

import (
	"time"

	"invoice-reconciler/internal/core/domain"

	"github.com/shopspring/decimal"
)

// MaxUploadBytes is the upload size ceiling (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// InvoiceUpload carries a validated-at-the-boundary image upload into the
// ingestion pipeline.
type InvoiceUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// IngestResult is what a successful (or best-effort) ingestion returns: the
// persisted record plus the raw candidate fields and raw OCR text, so the
// caller can show what was auto-filled versus defaulted.
type IngestResult struct {
	Invoice   domain.Invoice             `json:"invoice"`
	Extracted domain.ExtractionCandidate `json:"extractedData"`
	RawText   string                     `json:"rawText"`
}

// UpdateInvoiceStatusRequest is the body of the status-transition endpoint.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,invoicestatus"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Vendor        string          `json:"vendor"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Description   string          `json:"description,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Confidence    float64         `json:"confidence"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Vendor:        inv.Vendor,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Description:   inv.Description,
		Notes:         inv.Notes,
		Confidence:    inv.Confidence,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain invoices to DTOs.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
