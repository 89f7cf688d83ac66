package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/platform/config"
	"invoice-reconciler/internal/utils"

	"golang.org/x/oauth2"
)

type xeroService struct {
	settings  portssvc.SettingsSvcFacade
	stateRepo portsrepo.OAuthStateRepositoryFacade
	tokenRepo portsrepo.XeroTokenRepositoryFacade
	authURL   string
	tokenURL  string
}

// NewXeroService creates the Xero authorization-code grant service.
func NewXeroService(
	cfg *config.Config,
	settings portssvc.SettingsSvcFacade,
	stateRepo portsrepo.OAuthStateRepositoryFacade,
	tokenRepo portsrepo.XeroTokenRepositoryFacade,
) portssvc.XeroSvcFacade {
	return &xeroService{
		settings:  settings,
		stateRepo: stateRepo,
		tokenRepo: tokenRepo,
		authURL:   cfg.XeroAuthURL,
		tokenURL:  cfg.XeroTokenURL,
	}
}

var _ portssvc.XeroSvcFacade = (*xeroService)(nil)

// BuildAuthorizationURL constructs the authorization-request URL. The state
// token is generated fresh per call and persisted so the callback can verify
// it; each token is single-use.
func (s *xeroService) BuildAuthorizationURL(ctx context.Context) (string, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load settings for authorization url: %w", err)
	}
	if settings.Xero.ClientID == "" {
		return "", apperrors.ErrMissingClientID
	}

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	if err := s.stateRepo.SaveState(ctx, domain.OAuthState{State: state, IssuedAt: time.Now()}); err != nil {
		return "", fmt.Errorf("failed to persist oauth state: %w", err)
	}

	scope := settings.Xero.Scope
	if scope == "" {
		scope = domain.DefaultXeroScope
	}

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", settings.Xero.ClientID)
	params.Set("redirect_uri", settings.Xero.RedirectURI)
	params.Set("scope", scope)
	params.Set("state", state)

	return s.authURL + "?" + params.Encode(), nil
}

// ExchangeCode swaps the authorization code for tokens. The empty-code check
// runs before anything else so no network call or state lookup happens for a
// malformed callback.
func (s *xeroService) ExchangeCode(ctx context.Context, code, state string) (*domain.XeroTokenSet, error) {
	if code == "" {
		return nil, apperrors.ErrNoAuthCode
	}

	if err := s.stateRepo.ConsumeState(ctx, state); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrStateMismatch
		}
		return nil, fmt.Errorf("failed to verify oauth state: %w", err)
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for token exchange: %w", err)
	}
	if settings.Xero.ClientID == "" || settings.Xero.ClientSecret == "" {
		return nil, apperrors.ErrNoOAuthCredentials
	}

	// AuthStyleInHeader puts clientId:clientSecret into HTTP Basic auth, the
	// client authentication Xero's token endpoint expects.
	conf := &oauth2.Config{
		ClientID:     settings.Xero.ClientID,
		ClientSecret: settings.Xero.ClientSecret,
		RedirectURL:  settings.Xero.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.authURL,
			TokenURL:  s.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProviderRejected, err)
	}

	tokenSet := domain.XeroTokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		UpdatedAt:    time.Now(),
	}
	if err := s.tokenRepo.SaveTokenSet(ctx, tokenSet); err != nil {
		return nil, fmt.Errorf("failed to persist xero tokens: %w", err)
	}
	return &tokenSet, nil
}

func (s *xeroService) GetConnectionStatus(ctx context.Context) (*domain.XeroTokenSet, error) {
	tokens, err := s.tokenRepo.FindTokenSet(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load xero tokens: %w", err)
	}
	return tokens, nil
}
