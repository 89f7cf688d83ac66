package services

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// XeroSvcFacade handles the Xero authorization-code grant.
type XeroSvcFacade interface {
	// BuildAuthorizationURL constructs the authorization-request URL with a
	// freshly generated, persisted anti-replay state token. Fails with
	// apperrors.ErrMissingClientID when no client ID is configured.
	BuildAuthorizationURL(ctx context.Context) (string, error)

	// ExchangeCode swaps an authorization code for tokens. The state must be
	// one this server issued (single-use). On success the token set is
	// persisted and returned verbatim.
	ExchangeCode(ctx context.Context, code, state string) (*domain.XeroTokenSet, error)

	// GetConnectionStatus returns the stored token set so callers can tell
	// whether (and until when) a Xero connection exists. Fails with
	// apperrors.ErrNotFound when no exchange has completed yet.
	GetConnectionStatus(ctx context.Context) (*domain.XeroTokenSet, error)
}
