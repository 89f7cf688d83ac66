package services

import (
	"context"

	"invoice-reconciler/internal/core/domain"
	"invoice-reconciler/internal/dto"
)

// SettingsSvcFacade is the credential store. It owns the masking contract:
// raw secrets are only handed to in-process callers (the OCR gateway and the
// Xero exchange); anything display-bound goes through GetMaskedSettings.
type SettingsSvcFacade interface {
	// GetSettings returns the singleton settings document, creating and
	// persisting a zero-valued one on first read.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// GetMaskedSettings returns the same document with every non-empty
	// secret replaced by the mask sentinel.
	GetMaskedSettings(ctx context.Context) (*domain.Settings, error)

	// UpdateSettings merges the partial request into the stored document.
	// Absent fields and fields equal to the mask sentinel are left
	// untouched; everything else overwrites. The merge is applied as one
	// atomic whole-document save.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}
