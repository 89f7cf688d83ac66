package repositories

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// InvoiceReader defines read operations for invoice records.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a single invoice record.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves all invoices, newest first.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice records.
type InvoiceWriter interface {
	// SaveInvoice persists a newly ingested invoice. A non-sentinel invoice
	// number colliding with an existing record yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus applies a status transition and refreshes UpdatedAt.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
