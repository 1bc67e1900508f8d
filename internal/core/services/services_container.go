package services

import (
	"log/slog"

	"github.com/SscSPs/currency_converter_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, provider providers.RateProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	rateResolver := NewRateResolverService(repos.ExchangeRateRepo)
	container.Converter = NewConverterService(container.Currency, rateResolver)

	container.RateSync = NewRateSyncService(provider, repos.CurrencyRepo, repos.ExchangeRateRepo, logger)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.RateResolverSvc       = (*RateResolverService)(nil)
	_ portssvc.ConverterSvcFacade    = (*ConverterService)(nil)
	_ portssvc.ExchangeRateReaderSvc = (*ExchangeRateService)(nil)
	_ portssvc.RateSyncSvcFacade     = (*RateSyncService)(nil)
)
