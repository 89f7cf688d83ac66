package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"
)

type settingsService struct {
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates the credential store service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings returns the singleton document. On first read it persists a
// zero-valued document (with the default Xero scope) so subsequent reads are
// idempotent. Creation goes through the merge lock: if an update lands
// concurrently, its document wins over the zero-valued one.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	created, err := s.settingsRepo.MergeSettings(ctx, func(current *domain.Settings) (domain.Settings, error) {
		if current != nil {
			return *current, nil
		}
		now := time.Now()
		return domain.Settings{
			Xero:      domain.XeroConfig{Scope: domain.DefaultXeroScope},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return created, nil
}

func (s *settingsService) GetMaskedSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	masked := settings.Masked()
	return &masked, nil
}

// UpdateSettings merges the partial request into the stored document. The
// merge runs inside the repository transaction against the row as it exists
// under the lock, so two concurrent updates cannot revert each other's
// freshly written fields. A secret equal to the mask sentinel never
// overwrites the stored value.
func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	merged, err := s.settingsRepo.MergeSettings(ctx, func(current *domain.Settings) (domain.Settings, error) {
		if current == nil {
			// First-ever save must carry the Xero sub-object.
			if req.Xero == nil {
				return domain.Settings{}, fmt.Errorf("%w: xeroConfig is required on initial save", apperrors.ErrValidation)
			}
			current = &domain.Settings{
				Xero:      domain.XeroConfig{Scope: domain.DefaultXeroScope},
				CreatedAt: time.Now(),
			}
		}

		merged := *current
		applySecret(&merged.VisionAPIKey, req.VisionAPIKey)
		applySecret(&merged.DextAPIKey, req.DextAPIKey)
		if req.Xero != nil {
			applySecret(&merged.Xero.ClientID, req.Xero.ClientID)
			applySecret(&merged.Xero.ClientSecret, req.Xero.ClientSecret)
			applyValue(&merged.Xero.RedirectURI, req.Xero.RedirectURI)
			applyValue(&merged.Xero.Scope, req.Xero.Scope)
		}
		if merged.Xero.Scope == "" {
			merged.Xero.Scope = domain.DefaultXeroScope
		}
		merged.UpdatedAt = time.Now()
		return merged, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return merged, nil
}

// applySecret overwrites target unless the incoming value is absent or the
// mask sentinel round-tripped from a previous masked read.
func applySecret(target *string, incoming *string) {
	if incoming == nil || *incoming == domain.MaskSentinel {
		return
	}
	*target = *incoming
}

// applyValue overwrites target unless the incoming value is absent. Used for
// fields that are never masked.
func applyValue(target *string, incoming *string) {
	if incoming == nil {
		return
	}
	*target = *incoming
}
