package services

import (
	"context"

	"invoice-reconciler/internal/core/domain"
	"invoice-reconciler/internal/dto"
)

// InvoiceReaderSvc defines read operations over stored invoices.
type InvoiceReaderSvc interface {
	// ListInvoices retrieves all invoices, newest first.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// GetInvoiceByID retrieves a single invoice. Fails with
	// apperrors.ErrNotFound when no record has that ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceIngestionSvc coordinates the upload → OCR → extraction → persistence
// pipeline.
type InvoiceIngestionSvc interface {
	// Ingest validates the upload, runs OCR and extraction, substitutes
	// defaults for missed fields and persists the resulting record. The
	// result carries the raw candidate fields and raw OCR text so callers
	// can show what was auto-filled versus defaulted.
	Ingest(ctx context.Context, upload dto.InvoiceUpload) (*dto.IngestResult, error)
}

// InvoiceWorkflowSvc covers the review workflow mutations.
type InvoiceWorkflowSvc interface {
	// UpdateInvoiceStatus transitions an invoice to a new workflow state.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceIngestionSvc
	InvoiceWorkflowSvc
}
