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

// settingsRowID is the fixed primary key of the single settings row. The
// table carries a CHECK (id = 1) so a second row can never appear.
const settingsRowID = 1

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates the repository for the settings singleton.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

const settingsColumns = `vision_api_key, dext_api_key, xero_client_id, xero_client_secret, xero_redirect_uri, xero_scope, created_at, updated_at`

// FindSettings retrieves the settings row by its well-known ID.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM app_settings WHERE id = $1;`

	settings, err := scanSettings(r.Pool.QueryRow(ctx, query, settingsRowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return settings, nil
}

// MergeSettings runs the read-merge-write cycle inside one transaction. The
// SELECT takes a row lock, so two concurrent merges serialize and the second
// one reads the first one's committed document instead of a stale copy.
func (r *PgxSettingsRepository) MergeSettings(ctx context.Context, merge func(current *domain.Settings) (domain.Settings, error)) (*domain.Settings, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `SELECT ` + settingsColumns + ` FROM app_settings WHERE id = $1 FOR UPDATE;`
	current, err := scanSettings(tx.QueryRow(ctx, lockQuery, settingsRowID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to lock settings row: %w", err)
		}
		current = nil
	}

	merged, err := merge(current)
	if err != nil {
		return nil, err
	}

	upsert := `
		INSERT INTO app_settings (id, ` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			vision_api_key = EXCLUDED.vision_api_key,
			dext_api_key = EXCLUDED.dext_api_key,
			xero_client_id = EXCLUDED.xero_client_id,
			xero_client_secret = EXCLUDED.xero_client_secret,
			xero_redirect_uri = EXCLUDED.xero_redirect_uri,
			xero_scope = EXCLUDED.xero_scope,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, upsert,
		settingsRowID,
		merged.VisionAPIKey,
		merged.DextAPIKey,
		merged.Xero.ClientID,
		merged.Xero.ClientSecret,
		merged.Xero.RedirectURI,
		merged.Xero.Scope,
		merged.CreatedAt,
		merged.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &merged, nil
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(
		&s.VisionAPIKey,
		&s.DextAPIKey,
		&s.Xero.ClientID,
		&s.Xero.ClientSecret,
		&s.Xero.RedirectURI,
		&s.Xero.Scope,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
