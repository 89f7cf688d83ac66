package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"invoice-reconciler/internal/apperrors"
	portssvc "invoice-reconciler/internal/core/ports/services"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

type ocrService struct {
	settings portssvc.SettingsSvcFacade
	logger   *slog.Logger
	// extra client options, appended after the API key; tests use these to
	// point the client at a local server.
	clientOpts []option.ClientOption
}

// NewOCRService creates the gateway to Google Vision text detection.
func NewOCRService(settings portssvc.SettingsSvcFacade, logger *slog.Logger, opts ...option.ClientOption) portssvc.OCRSvcFacade {
	return &ocrService{settings: settings, logger: logger, clientOpts: opts}
}

var _ portssvc.OCRSvcFacade = (*ocrService)(nil)

// ExtractText performs text detection on the image and returns the full
// recognized text (the first annotation's description). The API key is read
// from the credential store on every call, never cached, so the latest
// configured key always applies.
func (s *ocrService) ExtractText(ctx context.Context, image []byte) (string, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load settings for ocr: %w", err)
	}
	if settings.VisionAPIKey == "" {
		return "", apperrors.ErrOCRMissingCredential
	}

	opts := append([]option.ClientOption{option.WithAPIKey(settings.VisionAPIKey)}, s.clientOpts...)
	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrOCRProvider, err)
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrOCRProvider, err)
	}
	// A batch answer missing its per-image entry is a provider anomaly, not
	// a blank image.
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("%w: empty batch response", apperrors.ErrOCRProvider)
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrOCRProvider, annotated.Error.Message)
	}
	if len(annotated.TextAnnotations) == 0 {
		return "", apperrors.ErrOCRNoTextDetected
	}

	text := annotated.TextAnnotations[0].Description
	// The payload itself is never logged, only its size.
	s.logger.Info("Vision text detection completed", slog.Int("text_length", len(text)))
	return text, nil
}
