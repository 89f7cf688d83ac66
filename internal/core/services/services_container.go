package services

import (
	"log/slog"

	portsrepo "invoice-reconciler/internal/core/ports/repositories"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings comes first: the OCR gateway and the Xero exchange both read
	// credentials through it at call time.
	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.OCR = NewOCRService(container.Settings, logger)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, container.OCR)
	container.Xero = NewXeroService(cfg, container.Settings, repos.OAuthStateRepo, repos.XeroTokenRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
