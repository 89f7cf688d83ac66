package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// OCR gateway errors.
var (
	// ErrOCRMissingCredential indicates no Vision API key is configured in settings.
	ErrOCRMissingCredential = errors.New("ocr credential not configured")
	// ErrOCRNoTextDetected indicates the provider returned zero text annotations.
	ErrOCRNoTextDetected = errors.New("no text detected in image")
	// ErrOCRProvider wraps transport or provider-side failures. The wrapped
	// detail is opaque; callers must not parse it.
	ErrOCRProvider = errors.New("ocr provider failure")
)

// Ingestion errors.
var (
	// ErrInvalidUpload indicates the uploaded payload is empty, oversized or
	// not an image.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrExtractionFailed indicates the OCR step failed; distinct from an
	// internal failure so the HTTP layer can answer 422 instead of 500.
	ErrExtractionFailed = errors.New("invoice extraction failed")
)

// Xero OAuth errors.
var (
	// ErrMissingClientID indicates no Xero client ID is configured.
	ErrMissingClientID = errors.New("xero client id not configured")
	// ErrNoAuthCode indicates the callback arrived without an authorization code.
	ErrNoAuthCode = errors.New("authorization code is missing")
	// ErrNoOAuthCredentials indicates the token exchange cannot run because no
	// client secret is stored.
	ErrNoOAuthCredentials = errors.New("xero credentials not configured")
	// ErrProviderRejected indicates the token endpoint returned a non-success status.
	ErrProviderRejected = errors.New("token endpoint rejected the exchange")
	// ErrStateMismatch indicates the callback state does not match any state
	// this server issued.
	ErrStateMismatch = errors.New("oauth state mismatch")
)
