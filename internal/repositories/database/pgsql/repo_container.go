package pgsql

import (
	portsrepo "invoice-reconciler/internal/core/ports/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		SettingsRepo:   newPgxSettingsRepository(dbPool),
		OAuthStateRepo: newPgxOAuthStateRepository(dbPool),
		XeroTokenRepo:  newPgxXeroTokenRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
