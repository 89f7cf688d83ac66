package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/core/services"
	"invoice-reconciler/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Mock OCRService ---
type MockOCRService struct {
	mock.Mock
}

func (m *MockOCRService) ExtractText(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvoiceRepository
	mockOCR  *MockOCRService
	service  portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockOCR = new(MockOCRService)
	suite.service = services.NewInvoiceService(suite.mockRepo, suite.mockOCR)
}

func validUpload(content []byte) dto.InvoiceUpload {
	return dto.InvoiceUpload{
		Filename:    "invoice.jpg",
		ContentType: "image/jpeg",
		Content:     content,
	}
}

func (suite *InvoiceServiceTestSuite) TestIngest_EmptyUpload() {
	ctx := context.Background()

	_, err := suite.service.Ingest(ctx, validUpload(nil))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidUpload)
	suite.mockOCR.AssertNotCalled(suite.T(), "ExtractText", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIngest_OversizedUpload() {
	ctx := context.Background()
	upload := validUpload(bytes.Repeat([]byte{0xff}, dto.MaxUploadBytes+1))

	_, err := suite.service.Ingest(ctx, upload)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidUpload)
}

func (suite *InvoiceServiceTestSuite) TestIngest_NonImageContentType() {
	ctx := context.Background()
	upload := dto.InvoiceUpload{
		Filename:    "invoice.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	}

	_, err := suite.service.Ingest(ctx, upload)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidUpload)
	suite.mockOCR.AssertNotCalled(suite.T(), "ExtractText", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIngest_OCRFailureMapsToExtractionFailed() {
	ctx := context.Background()
	upload := validUpload([]byte("fake-image"))

	suite.mockOCR.On("ExtractText", ctx, upload.Content).Return("", apperrors.ErrOCRNoTextDetected).Once()

	_, err := suite.service.Ingest(ctx, upload)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExtractionFailed)
	suite.ErrorIs(err, apperrors.ErrOCRNoTextDetected)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIngest_FullExtraction() {
	ctx := context.Background()
	upload := validUpload([]byte("fake-image"))
	rawText := "Invoice Number: INV-42\nVendor: Acme Ltd\nTotal: $500.00\n01/02/2024"

	suite.mockOCR.On("ExtractText", ctx, upload.Content).Return(rawText, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	result, err := suite.service.Ingest(ctx, upload)

	suite.Require().NoError(err)
	suite.Equal("INV-42", result.Invoice.InvoiceNumber)
	suite.Equal("Acme Ltd", result.Invoice.Vendor)
	suite.True(result.Invoice.Amount.Equal(decimal.NewFromFloat(500.00)))
	suite.Equal(domain.StatusReview, result.Invoice.Status)
	suite.Equal(2024, result.Invoice.IssueDate.Year())
	suite.Equal(result.Invoice.IssueDate, result.Invoice.DueDate)
	suite.Equal(rawText, result.RawText)
	suite.Require().NotNil(result.Extracted.InvoiceNumber)
	suite.Equal("INV-42", *result.Extracted.InvoiceNumber)
	suite.GreaterOrEqual(result.Invoice.Confidence, 80.0)
	suite.Less(result.Invoice.Confidence, 100.0)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestIngest_DefaultSubstitution() {
	ctx := context.Background()
	upload := validUpload([]byte("fake-image"))

	suite.mockOCR.On("ExtractText", ctx, upload.Content).Return("no recognizable markers here", nil).Once()

	var saved domain.Invoice
	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	before := time.Now()
	result, err := suite.service.Ingest(ctx, upload)
	after := time.Now()

	suite.Require().NoError(err)
	suite.Equal(domain.UnknownInvoiceNumber, saved.InvoiceNumber)
	suite.Equal(domain.UnknownVendor, saved.Vendor)
	suite.True(saved.Amount.IsZero())
	suite.Equal(domain.DefaultCurrency, saved.Currency)
	suite.Equal(domain.StatusReview, saved.Status)
	// Both dates fall back to the same ingestion timestamp.
	suite.Equal(saved.IssueDate, saved.DueDate)
	suite.WithinRange(saved.IssueDate, before, after)
	suite.Nil(result.Extracted.InvoiceNumber)
	suite.Nil(result.Extracted.Amount)
}

func (suite *InvoiceServiceTestSuite) TestIngest_UnparsableDateFallsBack() {
	ctx := context.Background()
	upload := validUpload([]byte("fake-image"))

	// 99/99/99 matches the date pattern but is not a calendar date.
	suite.mockOCR.On("ExtractText", ctx, upload.Content).Return("99/99/99", nil).Once()

	var saved domain.Invoice
	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	result, err := suite.service.Ingest(ctx, upload)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Extracted.Date)
	suite.Equal("99/99/99", *result.Extracted.Date, "raw match is still reported")
	suite.Equal(saved.IssueDate, saved.DueDate)
	suite.WithinDuration(time.Now(), saved.IssueDate, time.Minute)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListInvoices", ctx).Return([]domain.Invoice(nil), nil).Once()

	invoices, err := suite.service.ListInvoices(ctx)

	suite.Require().NoError(err)
	suite.NotNil(invoices)
	suite.Empty(invoices)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_Success() {
	ctx := context.Background()
	stored := &domain.Invoice{InvoiceID: "id-1", InvoiceNumber: "INV-42"}

	suite.mockRepo.On("FindInvoiceByID", ctx, "id-1").Return(stored, nil).Once()

	invoice, err := suite.service.GetInvoiceByID(ctx, "id-1")

	suite.Require().NoError(err)
	suite.Equal("INV-42", invoice.InvoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindInvoiceByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetInvoiceByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_InvalidStatus() {
	ctx := context.Background()

	_, err := suite.service.UpdateInvoiceStatus(ctx, "id-1", domain.InvoiceStatus("archived"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("UpdateInvoiceStatus", ctx, "missing", domain.StatusApproved).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, "missing", domain.StatusApproved)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_Success() {
	ctx := context.Background()
	approved := &domain.Invoice{InvoiceID: "id-1", Status: domain.StatusApproved}

	suite.mockRepo.On("UpdateInvoiceStatus", ctx, "id-1", domain.StatusApproved).
		Return(approved, nil).Once()

	invoice, err := suite.service.UpdateInvoiceStatus(ctx, "id-1", domain.StatusApproved)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.StatusApproved, invoice.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
