package services_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/core/services"

	"github.com/stretchr/testify/suite"
	"google.golang.org/api/option"
)

// --- Test Suite ---
type OCRServiceTestSuite struct {
	suite.Suite
	mockSettings *MockSettingsService
	logger       *slog.Logger
}

func (suite *OCRServiceTestSuite) SetupTest() {
	suite.mockSettings = new(MockSettingsService)
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *OCRServiceTestSuite) newService(providerURL string) portssvc.OCRSvcFacade {
	opts := []option.ClientOption{}
	if providerURL != "" {
		opts = append(opts, option.WithEndpoint(providerURL))
	}
	return services.NewOCRService(suite.mockSettings, suite.logger, opts...)
}

func (suite *OCRServiceTestSuite) settingsWithKey(key string) *domain.Settings {
	return &domain.Settings{VisionAPIKey: key}
}

func (suite *OCRServiceTestSuite) TestExtractText_MissingCredential() {
	ctx := context.Background()
	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey(""), nil).Once()

	_, err := suite.newService("").ExtractText(ctx, []byte("img"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOCRMissingCredential)
}

func (suite *OCRServiceTestSuite) TestExtractText_Success() {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"Invoice #A-1\nTotal: 10"},{"description":"Invoice"}]}]}`))
	}))
	defer server.Close()

	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey("key-1"), nil).Once()

	text, err := suite.newService(server.URL).ExtractText(ctx, []byte("img"))

	suite.Require().NoError(err)
	// Only the first annotation carries the full recognized text.
	suite.Equal("Invoice #A-1\nTotal: 10", text)
}

func (suite *OCRServiceTestSuite) TestExtractText_NoTextDetected() {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	}))
	defer server.Close()

	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey("key-1"), nil).Once()

	_, err := suite.newService(server.URL).ExtractText(ctx, []byte("img"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOCRNoTextDetected)
}

func (suite *OCRServiceTestSuite) TestExtractText_EmptyBatchIsProviderFailure() {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[]}`))
	}))
	defer server.Close()

	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey("key-1"), nil).Once()

	_, err := suite.newService(server.URL).ExtractText(ctx, []byte("img"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOCRProvider)
	suite.NotErrorIs(err, apperrors.ErrOCRNoTextDetected)
}

func (suite *OCRServiceTestSuite) TestExtractText_ProviderFailure() {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"backend error"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey("key-1"), nil).Once()

	_, err := suite.newService(server.URL).ExtractText(ctx, []byte("img"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOCRProvider)
}

func (suite *OCRServiceTestSuite) TestExtractText_KeyResolvedPerCall() {
	ctx := context.Background()
	// First call sees no key, second call sees a freshly configured one.
	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey(""), nil).Once()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"hello"}]}]}`))
	}))
	defer server.Close()
	svc := suite.newService(server.URL)

	_, err := svc.ExtractText(ctx, []byte("img"))
	suite.ErrorIs(err, apperrors.ErrOCRMissingCredential)

	suite.mockSettings.On("GetSettings", ctx).Return(suite.settingsWithKey("key-2"), nil).Once()
	text, err := svc.ExtractText(ctx, []byte("img"))
	suite.Require().NoError(err)
	suite.Equal("hello", text)
}

func TestOCRServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OCRServiceTestSuite))
}
