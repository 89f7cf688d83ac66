package services

import "context"

// OCRSvcFacade is the gateway to the external text-detection provider.
type OCRSvcFacade interface {
	// ExtractText runs text detection over the image bytes and returns the
	// full recognized text. The provider key is resolved from settings on
	// every call so a reconfigured key takes effect immediately. Failures
	// are the apperrors OCR sentinels: missing credential, no text detected,
	// or a wrapped provider failure.
	ExtractText(ctx context.Context, image []byte) (string, error)
}
