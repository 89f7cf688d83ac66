package repositories

import (
	"context"

	"invoice-reconciler/internal/core/domain"
)

// SettingsRepositoryFacade stores the single process-wide settings document.
// Implementations address the row by a fixed well-known ID rather than
// "find the one document" query semantics.
type SettingsRepositoryFacade interface {
	// FindSettings returns the settings row, or apperrors.ErrNotFound when it
	// has never been created.
	FindSettings(ctx context.Context) (*domain.Settings, error)

	// MergeSettings loads the settings row under a row lock, applies merge to
	// it (current is nil when the row has never been created) and persists the
	// returned document as a whole-document replace, all inside one
	// transaction. Concurrent merges serialize on the lock, so a merge always
	// sees the previous merge's write. An error from merge aborts the
	// transaction without writing and is returned unchanged.
	MergeSettings(ctx context.Context, merge func(current *domain.Settings) (domain.Settings, error)) (*domain.Settings, error)
}
