package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"
	"invoice-reconciler/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Ingest(ctx context.Context, upload dto.InvoiceUpload) (*dto.IngestResult, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IngestResult), args.Error(1)
}

func (m *MockInvoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockInvoiceService = new(MockInvoiceService)

	// No-op limiter keeps the route shape identical to production.
	passThrough := func(c *gin.Context) { c.Next() }

	api := suite.router.Group("/api")
	handlers.RegisterInvoiceRoutes(api, suite.mockInvoiceService, passThrough)
}

func (suite *InvoiceHandlerTestSuite) buildUpload(fieldName, filename string, content []byte) (*http.Request, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func sampleInvoice() domain.Invoice {
	now := time.Now()
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-42",
		Vendor:        "Acme Ltd",
		Amount:        decimal.NewFromFloat(500.00),
		Currency:      domain.DefaultCurrency,
		Status:        domain.StatusReview,
		IssueDate:     now,
		DueDate:       now,
		Description:   "Automatically processed invoice",
		Confidence:    99.5,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestUploadInvoice_Success() {
	inv := sampleInvoice()
	number := "INV-42"
	result := &dto.IngestResult{
		Invoice:   inv,
		Extracted: domain.ExtractionCandidate{InvoiceNumber: &number},
		RawText:   "Invoice # INV-42",
	}
	suite.mockInvoiceService.On("Ingest", mock.Anything, mock.MatchedBy(func(u dto.InvoiceUpload) bool {
		return u.Filename == "invoice.png" && len(u.Content) > 0
	})).Return(result, nil).Once()

	req, err := suite.buildUpload("invoice", "invoice.png", []byte("fake image bytes"))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp, "invoice")
	suite.Contains(resp, "extractedData")
	suite.Contains(resp, "rawText")

	var got dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(resp["invoice"], &got))
	suite.Equal(inv.InvoiceID, got.InvoiceID)
	suite.Equal("INV-42", got.InvoiceNumber)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUploadInvoice_NoFile() {
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/upload", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestUploadInvoice_WrongFieldName() {
	req, err := suite.buildUpload("document", "invoice.png", []byte("fake image bytes"))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestUploadInvoice_InvalidUpload() {
	suite.mockInvoiceService.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: not an image", apperrors.ErrInvalidUpload)).Once()

	req, err := suite.buildUpload("invoice", "invoice.txt", []byte("plain text"))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUploadInvoice_ExtractionFailed() {
	suite.mockInvoiceService.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, apperrors.ErrOCRNoTextDetected)).Once()

	req, err := suite.buildUpload("invoice", "invoice.png", []byte("fake image bytes"))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Failed to process invoice", resp["message"])
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Success() {
	invoices := []domain.Invoice{sampleInvoice(), sampleInvoice()}
	suite.mockInvoiceService.On("ListInvoices", mock.Anything).Return(invoices, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got []dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 2)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Empty() {
	suite.mockInvoiceService.On("ListInvoices", mock.Anything).Return([]domain.Invoice{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_Success() {
	inv := sampleInvoice()
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+inv.InvoiceID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(inv.InvoiceID, got.InvoiceID)
	suite.Equal("INV-42", got.InvoiceNumber)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, invoiceID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoiceID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_Success() {
	inv := sampleInvoice()
	inv.Status = domain.StatusApproved
	suite.mockInvoiceService.On("UpdateInvoiceStatus", mock.Anything, inv.InvoiceID, domain.StatusApproved).
		Return(&inv, nil).Once()

	body := bytes.NewBufferString(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/invoices/"+inv.InvoiceID+"/status", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("approved", got.Status)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_InvalidStatus() {
	body := bytes.NewBufferString(`{"status":"archived"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/invoices/"+uuid.NewString()+"/status", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	// Rejected by the binding tag before the service is reached.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("UpdateInvoiceStatus", mock.Anything, invoiceID, domain.StatusApproved).
		Return(nil, apperrors.ErrNotFound).Once()

	body := bytes.NewBufferString(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/invoices/"+invoiceID+"/status", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
