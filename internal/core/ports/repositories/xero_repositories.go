package repositories

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// OAuthStateRepositoryFacade persists anti-replay state tokens issued with
// authorization URLs so the callback can verify them. States are single-use:
// ConsumeState removes the state it matches.
type OAuthStateRepositoryFacade interface {
	// SaveState records a freshly issued state token.
	SaveState(ctx context.Context, state domain.OAuthState) error

	// ConsumeState atomically looks up and deletes a state. Returns
	// apperrors.ErrNotFound when the state was never issued or already used.
	ConsumeState(ctx context.Context, state string) error
}

// XeroTokenRepositoryFacade stores the most recent token set from a
// successful exchange (single-row upsert, like the settings document).
type XeroTokenRepositoryFacade interface {
	SaveTokenSet(ctx context.Context, tokens domain.XeroTokenSet) error
	FindTokenSet(ctx context.Context) (*domain.XeroTokenSet, error)
}
