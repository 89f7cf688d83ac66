package pgsql

import (
	"context"
	"errors"
	"fmt"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portsrepo "invoice-reconciler/internal/core/ports/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// stateTTL bounds how long an issued state stays redeemable.
const stateTTL = "10 minutes"

type PgxOAuthStateRepository struct {
	BaseRepository
}

func newPgxOAuthStateRepository(pool *pgxpool.Pool) portsrepo.OAuthStateRepositoryFacade {
	return &PgxOAuthStateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OAuthStateRepositoryFacade = (*PgxOAuthStateRepository)(nil)

// SaveState records a freshly issued state token. Stale states are pruned
// opportunistically so the table cannot grow unbounded.
func (r *PgxOAuthStateRepository) SaveState(ctx context.Context, state domain.OAuthState) error {
	prune := `DELETE FROM oauth_states WHERE issued_at < now() - interval '` + stateTTL + `';`
	if _, err := r.Pool.Exec(ctx, prune); err != nil {
		return fmt.Errorf("failed to prune oauth states: %w", err)
	}

	query := `INSERT INTO oauth_states (state, issued_at) VALUES ($1, $2);`
	if _, err := r.Pool.Exec(ctx, query, state.State, state.IssuedAt); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// ConsumeState deletes the state row, making each token single-use. A token
// that was never issued, already consumed or expired yields ErrNotFound.
func (r *PgxOAuthStateRepository) ConsumeState(ctx context.Context, state string) error {
	query := `
		DELETE FROM oauth_states
		WHERE state = $1 AND issued_at >= now() - interval '` + stateTTL + `'
		RETURNING state;
	`

	var consumed string
	err := r.Pool.QueryRow(ctx, query, state).Scan(&consumed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return nil
}

// tokenRowID is the fixed primary key of the single token row, mirroring the
// settings singleton.
const tokenRowID = 1

type PgxXeroTokenRepository struct {
	BaseRepository
}

func newPgxXeroTokenRepository(pool *pgxpool.Pool) portsrepo.XeroTokenRepositoryFacade {
	return &PgxXeroTokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.XeroTokenRepositoryFacade = (*PgxXeroTokenRepository)(nil)

// SaveTokenSet upserts the most recent exchanged token set.
func (r *PgxXeroTokenRepository) SaveTokenSet(ctx context.Context, tokens domain.XeroTokenSet) error {
	query := `
		INSERT INTO xero_tokens (id, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			expiry = EXCLUDED.expiry,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := r.Pool.Exec(ctx, query,
		tokenRowID,
		tokens.AccessToken,
		tokens.RefreshToken,
		tokens.TokenType,
		tokens.Expiry,
		tokens.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save xero tokens: %w", err)
	}
	return nil
}

// FindTokenSet retrieves the stored token set, if any exchange has happened.
func (r *PgxXeroTokenRepository) FindTokenSet(ctx context.Context) (*domain.XeroTokenSet, error) {
	query := `
		SELECT access_token, refresh_token, token_type, expiry, updated_at
		FROM xero_tokens
		WHERE id = $1;
	`

	var t domain.XeroTokenSet
	err := r.Pool.QueryRow(ctx, query, tokenRowID).Scan(
		&t.AccessToken,
		&t.RefreshToken,
		&t.TokenType,
		&t.Expiry,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find xero tokens: %w", err)
	}
	return &t, nil
}
