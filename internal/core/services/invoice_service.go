package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	"invoice-reconciler/internal/core/extraction"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	ocr         portssvc.OCRSvcFacade
}

// NewInvoiceService creates the ingestion coordinator and review-workflow service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, ocr portssvc.OCRSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo, ocr: ocr}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// Ingest orchestrates upload validation, OCR, field extraction, default
// substitution and persistence. It holds no field-level logic of its own and
// performs no retries; a transient provider failure surfaces immediately.
func (s *invoiceService) Ingest(ctx context.Context, upload dto.InvoiceUpload) (*dto.IngestResult, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	rawText, err := s.ocr.ExtractText(ctx, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, err)
	}

	candidate := extraction.Extract(rawText)
	now := time.Now()
	invoice := buildInvoice(candidate, now)

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to persist ingested invoice: %w", err)
	}

	return &dto.IngestResult{
		Invoice:   invoice,
		Extracted: candidate,
		RawText:   rawText,
	}, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, status)
	}
	invoice, err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return invoice, nil
}

func validateUpload(upload dto.InvoiceUpload) error {
	if len(upload.Content) == 0 {
		return fmt.Errorf("%w: empty upload", apperrors.ErrInvalidUpload)
	}
	if len(upload.Content) > dto.MaxUploadBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrInvalidUpload, dto.MaxUploadBytes)
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return fmt.Errorf("%w: only image files are allowed", apperrors.ErrInvalidUpload)
	}
	return nil
}

// buildInvoice applies the default-substitution rules to an extraction
// candidate. Issue and due date deliberately share the same fallback value.
func buildInvoice(candidate domain.ExtractionCandidate, now time.Time) domain.Invoice {
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: domain.UnknownInvoiceNumber,
		Vendor:        domain.UnknownVendor,
		Amount:        decimal.Zero,
		Currency:      domain.DefaultCurrency,
		Status:        domain.StatusReview,
		IssueDate:     now,
		DueDate:       now,
		Description:   "Automatically processed invoice",
		Confidence:    extraction.Confidence(candidate),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if candidate.InvoiceNumber != nil {
		invoice.InvoiceNumber = *candidate.InvoiceNumber
	}
	if candidate.Vendor != nil {
		invoice.Vendor = *candidate.Vendor
	}
	if candidate.Amount != nil {
		invoice.Amount = decimal.NewFromFloat(*candidate.Amount)
	}
	if candidate.Date != nil {
		if parsed, ok := parseInvoiceDate(*candidate.Date); ok {
			invoice.IssueDate = parsed
			invoice.DueDate = parsed
		}
	}
	return invoice
}

// Layouts accepted for the raw matched date substring, month first. An
// unparsable match falls back to the ingestion time.
var invoiceDateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"1.2.2006",
	"1.2.06",
}

func parseInvoiceDate(raw string) (time.Time, bool) {
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
